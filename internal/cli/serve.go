package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tpch-sweep/internal/router"
	"tpch-sweep/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the progress of the current sweep over HTTP",
	Long: `Starts a read-only HTTP server exposing /api/sweep/status (from
current_run.status and current_run.name) and /api/sweep/plan.

Pass the same sweep flags given to "run" so that the reported total and
the plan match the running sweep.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSweepConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		svc := service.NewServiceContext(cfg)
		defer svc.Close()

		r := router.SetupRouter(svc)
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("status server listening", "addr", addr)
		return r.Run(addr)
	},
}

func init() {
	AddCommand(serveCmd)
	addSweepFlags(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: server.port from config, 8080)")
}
