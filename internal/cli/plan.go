package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tpch-sweep/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Prints the invocations a sweep would run, without running them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSweepConfig(cmd)
		if err != nil {
			return err
		}

		sweep := cfg.SweepParams()
		layout := service.NewLayout(sweep, time.Now())
		points := service.BuildGrid(sweep.Iterations, sweep.CoreCounts)

		out := cmd.OutOrStdout()
		header := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.FgHiBlack)

		header.Fprintf(out, "Result dir: %s\n", layout.Dir)
		fmt.Fprintf(out, "%d runs (%d iterations x %d core counts)\n\n",
			len(points), sweep.Iterations, len(sweep.CoreCounts))
		for _, p := range points {
			inv := service.BuildInvocation(sweep, p, layout.Dir)
			dim.Fprintf(out, "[%d/%d] ", p.Iteration, p.CoreCount)
			fmt.Fprintf(out, "%s %s\n", inv.Executable, strings.Join(inv.Args(), " "))
		}
		return nil
	},
}

func init() {
	AddCommand(planCmd)
	addSweepFlags(planCmd)
}
