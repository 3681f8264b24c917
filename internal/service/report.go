package service

import (
	"fmt"
	"strings"

	"tpch-sweep/internal/model"
)

// RenderSweepSummary 结束时打印的 markdown 摘要
func RenderSweepSummary(cfg model.SweepConfig, result *SweepResult) string {
	var b strings.Builder
	b.WriteString("# Sweep summary\n\n")
	b.WriteString(fmt.Sprintf("- sweep_id: %s\n", result.SweepID))
	b.WriteString(fmt.Sprintf("- result_dir: %s\n", result.ResultDir))
	b.WriteString(fmt.Sprintf("- scale: %s\n", model.FormatScale(cfg.Scale)))
	b.WriteString(fmt.Sprintf("- runs_per_core: %d\n", cfg.RunsPerCore))
	b.WriteString(fmt.Sprintf("- iterations: %d\n", cfg.Iterations))
	b.WriteString(fmt.Sprintf("- runs: %d / %d\n\n", result.Points, cfg.Iterations*len(cfg.CoreCounts)))

	if len(result.Failures) == 0 {
		b.WriteString("All runs exited with status 0.\n")
		return b.String()
	}

	b.WriteString("## Non-zero exits\n\n")
	b.WriteString("| iteration | cores | exit | result file |\n")
	b.WriteString("| ---: | ---: | ---: | --- |\n")
	max := len(result.Failures)
	if max > 20 {
		max = 20
	}
	for _, f := range result.Failures[:max] {
		b.WriteString(fmt.Sprintf("| %d | %d | %d | %s |\n",
			f.Point.Iteration, f.Point.CoreCount, f.ExitCode,
			ResultFilePath(result.ResultDir, f.Point.CoreCount, f.Point.Iteration)))
	}
	if len(result.Failures) > max {
		b.WriteString(fmt.Sprintf("\n...(%d more omitted)\n", len(result.Failures)-max))
	}
	return b.String()
}
