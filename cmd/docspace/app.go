package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/docspace/config"
	"github.com/jonwraymond/docspace/observe"
	"github.com/jonwraymond/docspace/workspace"
)

// app bundles the configured client with the telemetry shutdown hook.
type app struct {
	client   *workspace.Client
	shutdown func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "docspace",
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   exporterEnabled(cfg.TracingExporter),
			Exporter:  cfg.TracingExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  exporterEnabled(cfg.MetricsExporter),
			Exporter: cfg.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.LogLevel,
		},
	})
	if err != nil {
		return nil, err
	}

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, err
	}

	opts := []workspace.Option{
		workspace.WithBaseURL(cfg.BaseURL),
		workspace.WithUserAgent(cfg.UserAgent),
		workspace.WithNamespace(cfg.CacheNamespace),
		workspace.WithPolicy(cfg.Policy()),
		workspace.WithMiddleware(mw),
	}
	if cfg.SingleFlight {
		opts = append(opts, workspace.WithSingleFlight())
	}

	client, err := workspace.New(cfg.Token, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.CacheDisabled {
		client.Cache().Disable()
	}

	return &app{client: client, shutdown: obs.Shutdown}, nil
}

func (a *app) close(ctx context.Context) {
	_ = a.shutdown(ctx)
}

func exporterEnabled(name string) bool {
	return name != "" && name != "none"
}

// withApp builds the client for one command invocation and tears the
// telemetry down afterwards.
func withApp(fn func(context.Context, *cli.Command, *app) error) func(context.Context, *cli.Command) error {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)
		return fn(ctx, cmd, a)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "docspace",
		Usage:   "workspace API client with a read cache",
		Version: version,
		Commands: []*cli.Command{
			searchCommand(),
			pageCommand(),
			databaseCommand(),
			blockCommand(),
			userCommand(),
			commentCommand(),
			cacheCommand(),
		},
	}
}

// commonFlags are shared by every read command.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass the cache: always call the remote API, never store",
		},
		queryFlag(),
	}
}

func queryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "drill into the response with a gjson path (e.g. 'results.#.id')",
	}
}

func callOpts(cmd *cli.Command) []workspace.CallOption {
	if cmd.Bool("no-cache") {
		return []workspace.CallOption{workspace.NoCache()}
	}
	return nil
}
