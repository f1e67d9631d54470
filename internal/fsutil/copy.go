package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyByExtension copies every file under srcRoot matching one of the
// extensions to the same relative location under dstRoot. It returns the
// number of files copied.
func CopyByExtension(srcRoot, dstRoot string, extensions ...string) (int, error) {
	files, err := FindFilesByExtension(srcRoot, extensions...)
	if err != nil {
		return 0, err
	}
	for _, rel := range files {
		if err := CopyFile(filepath.Join(srcRoot, rel), filepath.Join(dstRoot, rel)); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

// CopyFile copies src to dst, creating dst's parent directories.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
