package store

import (
	"time"

	"assetsearch/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	DB DBConfig
	CH CHConfig
}

// DBConfig configures the relational asset store and tracing
type DBConfig struct {
	Driver      Dialect
	DSN         string
	MaxConns    int
	LogSQL      bool
	SlowQueryMs int

	// StatementTimeout is pushed to the server session (max_execution_time / statement_timeout)
	StatementTimeout time.Duration

	// Guard/boot knobs
	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	DSN     string
	Role    string
	Version string
}

// ConfigFromEnv reads SERVICE_DB_* and SERVICE_CLICKHOUSE_* under the given root
func ConfigFromEnv(root config.Conf, appName string) Config {
	db := root.Prefix("SERVICE_DB_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: appName,
		DB: DBConfig{
			Driver:           Dialect(db.MayEnum("DRIVER", string(DialectMySQL), string(DialectMySQL), string(DialectPostgres))),
			DSN:              db.MustString("DSN"),
			MaxConns:         db.MayIntRange("MAX_CONNS", 10, 1, 256),
			LogSQL:           db.MayBool("LOG_SQL", false),
			SlowQueryMs:      db.MayInt("SLOW_MS", 500),
			StatementTimeout: db.MayDuration("QUERY_TIMEOUT", 60*time.Second),
			ConnectRetries:   db.MayIntRange("CONNECT_RETRIES", 6, 1, 50),
			PingTimeout:      db.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: chc.MayBool("ENABLED", false),
			Role:    appName,
		},
	}
	if cfg.CH.Enabled {
		cfg.CH.DSN = chc.MustString("DSN")
	}
	return cfg
}
