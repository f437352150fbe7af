package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/app"
	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/config"
	"github.com/kurochkinivan/article_cleanup/internal/logging"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

const envPrefix = "ARTICLE_CLEANUP_"

var version = "dev"

func cmd() *cli.Command {
	var configFile string

	return &cli.Command{
		Name:    "article_cleanup",
		Usage:   "Filter a content tracking sheet down to the articles to review",
		Version: version,
		Flags:   globalFlags(&configFile),
		Commands: []*cli.Command{
			serveCmd(&configFile),
			cleanCmd(&configFile),
		},
	}
}

func serveCmd(configFile *string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the interactive web tool",
		Flags: serveFlags(configFile),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}

			log, closeLog := logging.New(os.Stdout, cfg.Logging)
			defer closeLog()

			return app.New(log, cfg).Run(ctx)
		},
	}
}

func cleanCmd(configFile *string) *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Clean a single CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Aliases:   []string{"i"},
				Usage:     "Read the sheet export from `FILE`",
				Required:  true,
				Validator: validateFile,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the cleaned CSV to `FILE`",
				Value:   cleanup.ExportFilename,
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "Also write the cleaned rows as a workbook to `FILE`",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Also write a PDF summary to `FILE`",
			},
			&cli.StringFlag{
				Name:  "counts",
				Usage: "Also write status value counts to `FILE`",
			},
			previewRowsFlag(configFile),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logCfg := config.LoadLogging(cmd)
			if err := logCfg.Validate(); err != nil {
				return err
			}

			log, closeLog := logging.New(os.Stdout, logCfg)
			defer closeLog()

			_, err := app.Clean(ctx, log, app.CleanOptions{
				Input:        cmd.String("input"),
				Output:       cmd.String("output"),
				Workbook:     cmd.String("xlsx"),
				Report:       cmd.String("report"),
				StatusCounts: cmd.String("counts"),
				PreviewRows:  cmd.Int("preview-rows"),
			})

			return err
		},
	}
}

func globalFlags(configFile *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE`",
			Sources:     cli.EnvVars(envPrefix + "CONFIG"),
			Destination: configFile,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set log level: debug, info, warn or error",
			Value:   "info",
			Sources: sources("LOG_LEVEL", "logging.level", configFile),
		},
		&cli.StringFlag{
			Name:    "seq-url",
			Usage:   "Also send logs to the Seq server at `URL`",
			Sources: sources("SEQ_URL", "logging.seq_url", configFile),
		},
	}
}

func serveFlags(configFile *string) []cli.Flag {
	return []cli.Flag{
		previewRowsFlag(configFile),
		&cli.Int64Flag{
			Name:    "max-upload-size",
			Usage:   "Set the largest accepted upload in bytes",
			Value:   32 << 20,
			Sources: sources("MAX_UPLOAD_SIZE", "app.max_upload_size", configFile),
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Usage:   "Forget uploaded tables idle for longer than this",
			Value:   30 * time.Minute,
			Sources: sources("SESSION_TTL", "app.session_ttl", configFile),
		},
		&cli.DurationFlag{
			Name:    "sweep-interval",
			Usage:   "Set how often idle sessions are removed",
			Value:   1 * time.Minute,
			Sources: sources("SWEEP_INTERVAL", "app.sweep_interval", configFile),
		},
		&cli.StringFlag{
			Name:    "http-host",
			Usage:   "Set HTTP server host",
			Value:   "localhost",
			Sources: sources("HTTP_HOST", "http.host", configFile),
		},
		&cli.StringFlag{
			Name:    "http-port",
			Usage:   "Set HTTP server port",
			Value:   "8501",
			Sources: sources("HTTP_PORT", "http.port", configFile),
		},
		&cli.DurationFlag{
			Name:    "http-idle-timeout",
			Usage:   "Set HTTP server idle timeout",
			Value:   1 * time.Minute,
			Sources: sources("HTTP_IDLE_TIMEOUT", "http.idle_timeout", configFile),
		},
		&cli.DurationFlag{
			Name:    "http-read-timeout",
			Usage:   "Set HTTP server read timeout",
			Value:   30 * time.Second,
			Sources: sources("HTTP_READ_TIMEOUT", "http.read_timeout", configFile),
		},
		&cli.DurationFlag{
			Name:    "http-write-timeout",
			Usage:   "Set HTTP server write timeout",
			Value:   30 * time.Second,
			Sources: sources("HTTP_WRITE_TIMEOUT", "http.write_timeout", configFile),
		},
		&cli.StringFlag{
			Name:    "http-csrf-key",
			Usage:   "Sign form tokens with the hex encoded 32 byte `KEY`",
			Sources: sources("HTTP_CSRF_KEY", "http.csrf_key", configFile),
		},
		&cli.BoolFlag{
			Name:    "http-secure-cookies",
			Usage:   "Mark cookies secure, for serving behind HTTPS",
			Sources: sources("HTTP_SECURE_COOKIES", "http.secure_cookies", configFile),
		},
	}
}

func previewRowsFlag(configFile *string) cli.Flag {
	return &cli.IntFlag{
		Name:    "preview-rows",
		Usage:   "Set how many rows table previews show",
		Value:   cleanup.DefaultPreviewRows,
		Sources: sources("PREVIEW_ROWS", "app.preview_rows", configFile),
	}
}

// sources looks a flag up in the environment first, then in the YAML config.
func sources(env, key string, configFile *string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		cli.EnvVar(envPrefix+env),
		yaml.YAML(key, altsrc.NewStringPtrSourcer(configFile)),
	)
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}

	return nil
}

func validateConfig(config string) error {
	if err := validateFile(config); err != nil {
		return err
	}

	ext := filepath.Ext(config)
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}
