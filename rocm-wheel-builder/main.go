package main

import "rocm-tools/go/rocm-wheel-builder/cmd"

func main() {
	cmd.Execute()
}
