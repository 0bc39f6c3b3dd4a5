// Package export writes a built report to the four RIPS text files and
// bundles them into the submission archive.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/period"
)

// RowSource yields the string rows of one RIPS file.
type RowSource interface {
	Rows(fk model.FileKind) [][]string
}

// WriteReport writes AC, US, AF and CT for p into dir and returns the paths
// in that order.
func WriteReport(dir string, p period.Period, src RowSource, crlf bool) ([]string, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(model.AllFiles))
	for _, fk := range model.AllFiles {
		path := filepath.Join(dir, p.FileName(fk.Prefix))
		if err := WriteFile(path, src.Rows(fk), crlf); err != nil {
			return nil, fmt.Errorf("write %s file: %w", fk.Prefix, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
