package config

import (
	"errors"
	"io/fs"

	"entitylens/internal/platform/config/raw"

	"github.com/joho/godotenv"
)

// LoadDotenv loads env files into the process env without overriding values already set
// a missing file is not an error; the default is ./.env or DOTENV_FILE when set
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{raw.New().Get("DOTENV_FILE", ".env")}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
