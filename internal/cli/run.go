package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tpch-sweep/internal/config"
	"tpch-sweep/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the full sweep sequentially",
	Long: `Runs the benchmark executable for every (iteration, core count) point, one at a
time. A non-zero exit of the benchmark does not stop the sweep unless
--halt-on-failure is set; exit statuses are recorded in current_run.out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSweepConfig(cmd)
		if err != nil {
			return err
		}

		svc := service.NewServiceContext(cfg)
		defer svc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := svc.NewSweepRunner(time.Now())
		result, err := runner.Run(ctx)
		if result != nil {
			fmt.Fprint(cmd.OutOrStdout(), service.RenderSweepSummary(cfg.SweepParams(), result))
		}
		return err
	},
}

func init() {
	AddCommand(runCmd)
	addSweepFlags(runCmd)
	runCmd.Flags().Bool("halt-on-failure", false, "Stop the sweep when the benchmark exits non-zero")
}

// addSweepFlags flags shared by run and plan; unset flags leave the config value alone.
func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("scale", 0, "TPC-H scale factor")
	cmd.Flags().Int("runs-per-core", 0, "Query runs per core (multiplied by the core count)")
	cmd.Flags().Int("iterations", 0, "Number of iterations over the core-count list")
	cmd.Flags().IntSlice("cores", nil, "Core counts in execution order, 0 disables the scheduler")
	cmd.Flags().IntSlice("queries", nil, "TPC-H query ids")
	cmd.Flags().String("appendix", "", "Free-text suffix for the result directory name")
}

func applySweepFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("scale") {
		if cfg.Sweep.Scale, err = flags.GetFloat64("scale"); err != nil {
			return err
		}
	}
	if flags.Changed("runs-per-core") {
		if cfg.Sweep.RunsPerCore, err = flags.GetInt("runs-per-core"); err != nil {
			return err
		}
	}
	if flags.Changed("iterations") {
		if cfg.Sweep.Iterations, err = flags.GetInt("iterations"); err != nil {
			return err
		}
	}
	if flags.Changed("cores") {
		if cfg.Sweep.CoreCounts, err = flags.GetIntSlice("cores"); err != nil {
			return err
		}
	}
	if flags.Changed("queries") {
		if cfg.Sweep.QueryIDs, err = flags.GetIntSlice("queries"); err != nil {
			return err
		}
	}
	if flags.Changed("appendix") {
		if cfg.Sweep.Appendix, err = flags.GetString("appendix"); err != nil {
			return err
		}
	}
	if flags.Lookup("halt-on-failure") != nil && flags.Changed("halt-on-failure") {
		if cfg.Sweep.HaltOnFailure, err = flags.GetBool("halt-on-failure"); err != nil {
			return err
		}
	}
	return nil
}
