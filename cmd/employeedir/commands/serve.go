package commands

import (
	"time"

	"employeedir/internal/telemetry"
	"employeedir/internal/web"
	"employeedir/lib/serviceutil"

	"github.com/spf13/cobra"
)

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to listen_port of the config).")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves a page with buttons that fetch and create employees.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := serviceutil.SignalContext(cmd.Context())
		defer cancel()

		doc, err := web.NewIndexDocument()
		if err != nil {
			return err
		}
		port := servePort
		if port == 0 {
			port = config.ListenPort
		}

		telemetry.InstrumentPerfStats(ctx, tel, time.Second*30)
		server := web.NewServer(doc, sessions, tel)
		return serviceutil.StartHttpServer(ctx, port, server.Handler())
	},
}
