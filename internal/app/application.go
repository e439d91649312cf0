package app

import (
	"log/slog"

	"lebstories.aub.edu.lb/internal/appconf"
	"lebstories.aub.edu.lb/internal/dataset"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	DataConfig  dataset.Config
	Logger      *slog.Logger
	DataManager *dataset.Manager
}
