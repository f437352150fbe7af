package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
)

type Config struct {
	App
	HTTP
	Logging
}

type App struct {
	PreviewRows   int           `validate:"gte=1,lte=100"`
	MaxUploadSize int64         `validate:"gt=0"`
	SessionTTL    time.Duration `validate:"gt=0"`
	SweepInterval time.Duration `validate:"gt=0"`
}

type HTTP struct {
	Host         string
	Port         string        `validate:"required,numeric"`
	IdleTimeout  time.Duration `validate:"gte=0"`
	ReadTimeout  time.Duration `validate:"gte=0"`
	WriteTimeout time.Duration `validate:"gte=0"`

	// CSRFKey is a hex encoded 32 byte key. A random key is used when empty.
	CSRFKey       string `validate:"omitempty,hexadecimal,len=64"`
	SecureCookies bool
}

type Logging struct {
	Level  string `validate:"oneof=debug info warn error"`
	SeqURL string `validate:"omitempty,url"`
}

func Load(cmd *cli.Command) (*Config, error) {
	cfg := &Config{
		App: App{
			PreviewRows:   cmd.Int("preview-rows"),
			MaxUploadSize: cmd.Int64("max-upload-size"),
			SessionTTL:    cmd.Duration("session-ttl"),
			SweepInterval: cmd.Duration("sweep-interval"),
		},
		HTTP: HTTP{
			Host:          cmd.String("http-host"),
			Port:          cmd.String("http-port"),
			IdleTimeout:   cmd.Duration("http-idle-timeout"),
			ReadTimeout:   cmd.Duration("http-read-timeout"),
			WriteTimeout:  cmd.Duration("http-write-timeout"),
			CSRFKey:       cmd.String("http-csrf-key"),
			SecureCookies: cmd.Bool("http-secure-cookies"),
		},
		Logging: LoadLogging(cmd),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func LoadLogging(cmd *cli.Command) Logging {
	return Logging{
		Level:  cmd.String("log-level"),
		SeqURL: cmd.String("seq-url"),
	}
}

func (c *Config) Validate() error {
	return validate(c)
}

func (l Logging) Validate() error {
	return validate(l)
}

func validate(v any) error {
	if err := validator.New().Struct(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
