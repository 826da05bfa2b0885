package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are read by LoadEnvFiles when no files are given
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadEnvFiles reads dotenv files into the process env.
// Keys already set in the environment win, and so do earlier files over later ones.
// Missing files are skipped; the returned slice names the files that were applied
func LoadEnvFiles(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, err
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
