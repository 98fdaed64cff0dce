package main

import (
	"time"

	"github.com/dmitrymomot/accesskit/pkg/bearer"
	"github.com/dmitrymomot/accesskit/pkg/httpserver"
	"github.com/dmitrymomot/accesskit/pkg/pg"
	"github.com/dmitrymomot/accesskit/pkg/redis"
)

// Policy sources selectable with POLICY_SOURCE.
const (
	sourcePreset   = "preset"
	sourceFile     = "file"
	sourceRedis    = "redis"
	sourcePostgres = "postgres"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"SERVICE_NAME" envDefault:"rbacd"`
	LogLevel string `env:"LOG_LEVEL"`

	PolicySource   string        `env:"POLICY_SOURCE" envDefault:"preset"`
	PolicyFile     string        `env:"POLICY_FILE"`
	CatalogFile    string        `env:"CATALOG_FILE"`
	StrictGrants   bool          `env:"POLICY_STRICT" envDefault:"false"`
	AllowedActions []string      `env:"POLICY_ALLOWED_ACTIONS" envSeparator:","`
	RoleHeader     string        `env:"ROLE_HEADER" envDefault:"X-Role"`
	ReadyTimeout   time.Duration `env:"READY_TIMEOUT" envDefault:"2s"`
	APIRateLimit   int           `env:"API_RATE_LIMIT" envDefault:"120"`

	HTTP   httpserver.Config
	Redis  redis.Config
	PG     pg.Config
	Bearer bearer.Config
}
