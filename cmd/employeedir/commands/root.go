package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"employeedir/internal/dummyapi"
	"employeedir/internal/session"
	"employeedir/internal/telemetry"
	"employeedir/lib/restyutil"
	"employeedir/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool
	baseUrl string
)

var (
	config   Config
	tel      telemetry.API = telemetry.SlogAPI{}
	sessions *session.Session
	// shutdown runs once the command has returned, whether or not it failed.
	shutdown []func(ctx context.Context) error
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output and dump every HTTP message.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	rootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", "", "Base url of the employee API (overrides the config file).")
}

var rootCmd = &cobra.Command{
	Use:           "employeedir",
	Short:         "employeedir is a CLI for listing and creating employees of the dummy employee API.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		otelRef, err := telemetry.SetupFromEnv(cmd.Context(), "employeedir")
		if err != nil {
			slog.Warn("failed to setup otel, continuing without it", "err", err)
		}
		shutdown = append(shutdown, otelRef.Shutdown)

		config, err = loadConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if baseUrl != "" {
			config.BaseUrl = baseUrl
		}

		opts := config.clientOptions()
		if verbose {
			output, err := restyutil.NewFilesystemOutput(config.HttpDumpDir)
			if err != nil {
				return fmt.Errorf("create http dump dir: %w", err)
			}
			opts.HttpDump = output
		}

		client := dummyapi.NewClient(opts, telemetry.NewScopedAPI("dummyapi", tel))
		sessions = session.New(client, tel)
		return nil
	},
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	hooks := shutdown
	shutdown = nil
	var errlist []error
	for _, hook := range hooks {
		errlist = append(errlist, hook(context.Background()))
	}
	if shutdownErr := errors.Join(errlist...); shutdownErr != nil {
		slog.Warn("failed to shutdown otel", "err", shutdownErr)
	}
	return err
}

func ExecuteContext(ctx context.Context) {
	err := execute(ctx, os.Args[1:])
	if err != nil {
		serviceutil.Fatal("failed to execute command", err)
	}
}
