package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/krishkalaria12/blogly/config"
	"github.com/krishkalaria12/blogly/database"
	"github.com/krishkalaria12/blogly/logging"
	"gorm.io/gorm"
)

// open loads configuration and connects to the database.
func open() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}
