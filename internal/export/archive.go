package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

// Archive deflates files into a zip at dest, storing each under its base
// name with modTime as the entry timestamp so identical inputs yield an
// identical archive. The zip is written to a temporary name and renamed into
// place; sources are removed only after the rename succeeds unless keep is
// set.
func Archive(dest string, files []string, modTime time.Time, keep bool) error {
	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addFile(zw, path, modTime); err != nil {
			zw.Close()
			out.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close archive: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move archive into place: %w", err)
	}

	if keep {
		return nil
	}
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove archived file: %w", err)
		}
	}
	return nil
}

func addFile(zw *zip.Writer, path string, modTime time.Time) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	hdr := &zip.FileHeader{
		Name:     filepath.Base(path),
		Method:   zip.Deflate,
		Modified: modTime,
	}
	hdr.SetMode(0o644)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("add %s: %w", hdr.Name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compress %s: %w", hdr.Name, err)
	}
	return nil
}
