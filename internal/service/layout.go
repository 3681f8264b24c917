package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tpch-sweep/internal/model"
)

const (
	ResultDirPrefix = "tpch"
	TimestampLayout = "2006-01-02_15-04-05"
)

// Layout 每个进程只计算一次的结果目录
type Layout struct {
	BaseDir string
	Name    string
	Dir     string
}

func NewLayout(cfg model.SweepConfig, now time.Time) Layout {
	name := ResultDirName(cfg, now)
	return Layout{
		BaseDir: cfg.ResultBaseDir,
		Name:    name,
		Dir:     filepath.Join(cfg.ResultBaseDir, name),
	}
}

// ResultDirName 如 tpch_scale1_chunksizeMAX_runspercore3_2024-05-01_12-00-00
func ResultDirName(cfg model.SweepConfig, now time.Time) string {
	chunkLabel := cfg.ChunkSizeLabel
	if chunkLabel == "" && cfg.ChunkSize > 0 {
		chunkLabel = "_chunksize" + strconv.Itoa(cfg.ChunkSize)
	}
	return fmt.Sprintf("%s_scale%s%s_runspercore%d%s_%s",
		ResultDirPrefix,
		model.FormatScale(cfg.Scale),
		chunkLabel,
		cfg.RunsPerCore,
		cfg.Appendix,
		now.Format(TimestampLayout),
	)
}

// Prepare 创建 base 目录和本次 sweep 目录，已存在时不报错
func (l Layout) Prepare() error {
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return fmt.Errorf("创建结果根目录失败: %w", err)
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("创建结果目录失败: %w", err)
	}
	return nil
}

