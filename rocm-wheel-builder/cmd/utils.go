package cmd

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"rocm-tools/go/pkg/buildlog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/valyala/gozstd"
)

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

// createWheelhouseArchive tars the wheelhouse directory into a
// zstd-compressed archive, skipping paths that match any exclude pattern.
func createWheelhouseArchive(log buildlog.Logger, wheelhouseDir string, excludePatterns []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := gozstd.NewWriter(&buf)
	tw := tar.NewWriter(zw)

	err := filepath.Walk(wheelhouseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(wheelhouseDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		for _, pattern := range excludePatterns {
			match, err := doublestar.Match(pattern, relPath)
			if err != nil {
				return err
			}
			if match {
				log.Debug("archive", "pack", "skip", "Excluding path based on pattern", "path", relPath, "pattern", pattern)
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(relPath)

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		if info.Mode().IsRegular() {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if _, err := io.Copy(tw, file); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
