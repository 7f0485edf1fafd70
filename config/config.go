package config

import (
	// Local Packages
	errors "card-ledger/errors"
)

var DefaultConfig = []byte(`
application: "card-ledger"

logger:
  level: "debug"

is_prod_mode: false

server:
  port: 4000
  uploads_dir: "./uploads"
  max_upload_bytes: 10485760

redis:
  uri: "localhost:6379"
  password: ""

mongo:
  uri: ""
`)

type Config struct {
	Application string `koanf:"application"`
	Logger      Logger `koanf:"logger"`
	IsProdMode  bool   `koanf:"is_prod_mode"`
	Server      Server `koanf:"server"`
	Redis       Redis  `koanf:"redis"`
	Mongo       Mongo  `koanf:"mongo"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Port           int    `koanf:"port"`
	UploadsDir     string `koanf:"uploads_dir"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

// Mongo holds the optional upload-audit store settings. An empty URI
// disables the audit trail.
type Mongo struct {
	URI string `koanf:"uri"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Server.Port <= 0 {
		ve.Add("server.port", "must be a positive number")
	}
	if c.Server.UploadsDir == "" {
		ve.Add("server.uploads_dir", "cannot be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		ve.Add("server.max_upload_bytes", "must be a positive number")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}

	return ve.Err()
}
