package pipeline

import (
	"os"

	"github.com/rs/zerolog"
)

// Cleanup removes the staging directory once its files have been archived.
// A directory that still holds files is left in place.
func Cleanup(log zerolog.Logger, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		log.Debug().Str("dir", dir).Int("entries", len(entries)).Msg("staging directory kept")
		return nil
	}
	if err := os.Remove(dir); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("staging cleanup complete")
	return nil
}
