package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Rabbit      RabbitConfig      `yaml:"rabbit"`
	UserService UserServiceConfig `yaml:"user_service"`
	Workflow    WorkflowConfig    `yaml:"workflow"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// RabbitConfig holds message broker connection settings.
type RabbitConfig struct {
	Host           string        `yaml:"host"            env:"RABBIT_HOST"            env-default:"localhost"`
	Port           int           `yaml:"port"            env:"RABBIT_PORT"            env-default:"5672"`
	UserName       string        `yaml:"user_name"       env:"RABBIT_USER_NAME"       env-default:"guest"`
	Password       string        `yaml:"password"        env:"RABBIT_PASSWORD"        env-default:"guest"`
	ExchangeName   string        `yaml:"exchange_name"   env:"RABBIT_EXCHANGE_NAME"   env-default:"cd-events"`
	AppName        string        `yaml:"app_name"        env:"RABBIT_APP_NAME"        env-default:"ts"`
	PublishTimeout time.Duration `yaml:"publish_timeout" env:"RABBIT_PUBLISH_TIMEOUT" env-default:"5s"`
}

// UserServiceConfig holds the outbound rating service settings.
type UserServiceConfig struct {
	Endpoint string        `yaml:"endpoint" env:"USER_SERVICE_ENDPOINT" env-required:"true"`
	Timeout  time.Duration `yaml:"timeout"  env:"USER_SERVICE_TIMEOUT"  env-default:"10s"`
}

// WorkflowConfig holds workflow service settings.
type WorkflowConfig struct {
	StoreTimeout   time.Duration `yaml:"store_timeout"    env:"WORKFLOW_STORE_TIMEOUT"    env-default:"5s"`
	MaxContentSize int           `yaml:"max_content_size" env:"WORKFLOW_MAX_CONTENT_SIZE" env-default:"1048576"`
	MaxBatchSize   int           `yaml:"max_batch_size"   env:"WORKFLOW_MAX_BATCH_SIZE"   env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// URL assembles the AMQP connection URL.
func (c RabbitConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.UserName, c.Password, c.Host, c.Port)
}
