package snapshot

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Write stores rows in a Parquet file at path, replacing any existing file.
func Write(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	w := parquet.NewGenericWriter[Row](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close snapshot writer: %w", err)
	}
	return f.Close()
}
