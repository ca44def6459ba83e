package config

import "time"

// Config holds server configuration values.
type Config struct {
	// Addr is the TCP listen address for the line-oriented chat protocol.
	Addr string `mapstructure:"addr" yaml:"addr"`
	// HTTPAddr is the listen address for the WebSocket transport; empty
	// disables it.
	HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr"`
	// PoolSize bounds the number of concurrently served connections.
	PoolSize int `mapstructure:"pool_size" yaml:"pool_size"`
	// CommandPrefix marks an input line as a command rather than chat text.
	CommandPrefix string `mapstructure:"command_prefix" yaml:"command_prefix"`
	// SystemPrefix marks system/informational lines sent to clients.
	SystemPrefix string `mapstructure:"system_prefix" yaml:"system_prefix"`
	// SweepInterval is the period of the connection liveness sweep.
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:            ":8888",
		HTTPAddr:        ":8080",
		PoolSize:        10,
		CommandPrefix:   "/",
		SystemPrefix:    ">",
		SweepInterval:   10 * time.Second,
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}
