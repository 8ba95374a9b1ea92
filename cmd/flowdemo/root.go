package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/syncflow/config"
	"github.com/kbukum/syncflow/flow"
	"github.com/kbukum/syncflow/logger"
	"github.com/kbukum/syncflow/observability"
	"github.com/kbukum/syncflow/version"
)

const serviceName = "flowdemo"

// app carries what PersistentPreRunE sets up for the subcommands. run
// closes it after the command returns.
type app struct {
	configFile string
	envFile    string
	logLevel   string

	cfg      DemoConfig
	log      *logger.Logger
	metrics  *observability.FlowMetrics
	shutdown observability.ShutdownFunc
}

// run executes the command tree and shuts telemetry down whatever the
// outcome. A command error takes precedence over a shutdown error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	runErr := root.ExecuteContext(ctx)
	if err := a.close(context.WithoutCancel(ctx)); err != nil {
		if runErr != nil {
			a.log.WithError(err).Warn("telemetry shutdown failed")
			return runErr
		}
		return err
	}
	return runErr
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{log: logger.Nop()}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Push value streams through synchronous flow trees",
		Long:          "flowdemo builds flow trees in code or from YAML blueprints\nand sends value ranges through them.",
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "Path to config.yml (default: search standard locations)")
	f.StringVar(&a.envFile, "env-file", "", "Path to a .env file (default: search standard locations)")
	f.StringVar(&a.logLevel, "log-level", "", "Override logging.level (trace, debug, info, warn, error, disabled)")

	root.AddCommand(
		newFizzBuzzCmd(a),
		newFilterCmd(a),
		newRunCmd(a),
		newDescribeCmd(a),
		newVersionCmd(),
	)
	return root, a
}

func (a *app) setup(ctx context.Context) error {
	opts := []config.LoaderOption{
		config.WithEnvPrefix("FLOWDEMO"),
		config.WithDefaults(configDefaults()),
	}
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	if err := config.LoadConfig(serviceName, &a.cfg, opts...); err != nil {
		return err
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger.Init(&a.cfg.Logging)
	a.log = logger.WithComponent(serviceName)

	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, metrics, err := observability.Setup(ctx, a.cfg.Telemetry, a.cfg.Name, a.cfg.Version, a.cfg.Environment)
	if err != nil {
		return err
	}
	a.shutdown, a.metrics = shutdown, metrics
	a.log.Debug("configured", logger.Fields(
		"environment", a.cfg.Environment,
		"telemetry", a.cfg.Telemetry.Enabled,
	))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	shutdown := a.shutdown
	a.shutdown = nil
	return shutdown(ctx)
}

// flowOptions returns the options every demo flow is built with.
func (a *app) flowOptions(name string) []flow.Option {
	opts := []flow.Option{flow.WithName(name), flow.WithLogger(a.log)}
	if a.cfg.Telemetry.Enabled {
		opts = append(opts, flow.WithTracing(serviceName), flow.WithMetrics(a.metrics))
	}
	return opts
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			line := info.String()
			if !info.IsRelease() {
				line += " (unreleased)"
			}
			_, err := cmd.OutOrStdout().Write([]byte(line + "\n"))
			return err
		},
	}
}
