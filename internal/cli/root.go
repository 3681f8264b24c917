package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tpch-sweep/internal/config"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "tpch-sweep",
	Short: "Runs a TPC-H benchmark executable across a grid of core counts and iterations",
	Long: `tpch-sweep invokes the benchmark executable once per (iteration, core count)
pair, writes one JSON result per run under results/<sweep-name>/, and tracks
progress in current_run.status, current_run.out and current_run.name.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "Path to the YAML config (defaults are used when missing)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Optional .env file with notifier credentials")
}

func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if os.Getenv("SWEEP_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSweepConfig config 文件 + env + 命令行 sweep 参数，校验后返回
func loadSweepConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := applySweepFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
