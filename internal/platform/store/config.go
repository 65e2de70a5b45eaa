package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	// AppName is reported to the servers as the client role
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop; zero means 20
	ConnectRetries int
	// PingTimeout bounds each boot ping; zero means 3s
	PingTimeout time.Duration
}

// CHConfig configures clickhouse
type CHConfig struct {
	Enabled bool
	URL     string
}
