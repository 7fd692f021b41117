package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Read returns the content of the file at path.
func Read(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %w", err)
	}

	return buf, nil
}

// WriteAtomic replaces the file at path with data. The content goes to a temp file next to it first, which
// is renamed over the target, so readers never see a half written file.
func WriteAtomic(path string, data []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.tmp", id.String()))

	log.Debug().Int("bytes", len(data)).Str("path", path).Str("tmp", tmp).Msg("writing file")

	f, err := os.Create(tmp)
	if err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		removeTemp(tmp)
		err = fmt.Errorf("error writing temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if err := f.Close(); err != nil {
		removeTemp(tmp)
		err = fmt.Errorf("error closing temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		removeTemp(tmp)
		err = fmt.Errorf("error replacing file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	log.Debug().Str("path", path).Msg("wrote file")

	return nil
}

func removeTemp(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
