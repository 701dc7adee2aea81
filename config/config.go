package config

import (
	"github.com/slotrack/server/internal/database"
	"github.com/slotrack/server/internal/http"
	"github.com/slotrack/server/internal/tracing"
)

type Configuration struct {
	HTTP     http.Configuration
	Database database.Configuration
	Tracing  tracing.Configuration
}
