// Command speechprep imports a recording and its XML transcript into
// train, dev and test CSVs of short audio slices.
//
//	speechprep --audio talk.mp3 --xml talk.xml --validate-locale fr
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/speechprep/bootstrap"
	"github.com/kbukum/speechprep/config"
	"github.com/kbukum/speechprep/importer"
	"github.com/kbukum/speechprep/logger"
	"github.com/kbukum/speechprep/observability"
	"github.com/kbukum/speechprep/version"
)

// flagKeys maps flags to config keys where the names differ. An empty key
// keeps the flag out of the config.
var flagKeys = map[string]string{
	"config":     "",
	"env-file":   "",
	"version":    "",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("speechprep", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("env-file", "", "path to a .env file")
	fs.Bool("version", false, "print the version and exit")

	fs.String("audio", "", "source recording; non-WAV input is converted with ffmpeg")
	fs.String("xml", "", "XML transcript with <row timestamp timedur> elements")
	fs.String("filter-alphabet", "", "reject transcripts with characters outside this alphabet file")
	fs.Bool("normalize", false, "fold transcripts to ASCII before validation")
	fs.String("validate-locale", "default", "label validator: default or fr")
	fs.String("normalization-table", "", "YAML table replacing the built-in French rules")
	fs.Int("workers", 0, "parallel segment workers (default: number of CPUs)")
	fs.Float64("max-segment-seconds", 0, "target upper bound of merged segments")
	fs.Float64("max-sample-seconds", 0, "reject slices longer than this")
	fs.Duration("tool-timeout", 0, "time limit of one ffmpeg invocation")
	fs.Int("tool-retries", 0, "extra attempts for a failing ffmpeg invocation")
	fs.String("ffmpeg-path", "", "ffmpeg binary")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("log-format", "", "console or json")
	return fs
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintln(stdout, version.Get().String())
		return 0
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Get().Short()))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx := context.Background()
	telemetry, err := observability.Setup(ctx, cfg.Telemetry, app.Version)
	if err != nil {
		app.Logger.Error("telemetry setup failed", logger.Fields(logger.FieldError, err.Error()))
		return 1
	}
	app.OnStop(telemetry.Shutdown)

	err = app.RunTask(ctx, func(ctx context.Context) error {
		_, err := importer.New(*cfg,
			importer.WithLogger(app.Logger),
			importer.WithOutput(stdout),
			importer.WithTelemetry(telemetry),
		).Run(ctx)
		return err
	})
	if err != nil {
		return 1
	}
	return 0
}

func loadConfig(fs *pflag.FlagSet) (*importer.Config, error) {
	opts := []config.LoaderOption{config.WithFlags(fs, flagKeys)}
	if path, _ := fs.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path, _ := fs.GetString("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}
	var cfg importer.Config
	if err := config.Load("speechprep", &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
