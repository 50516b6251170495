package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first of .env/.env.local found in the working
// directory. Variables already set in the process environment win.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", name).Build()
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
		return nil
	}
	return nil
}
