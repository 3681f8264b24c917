package model

import (
	"strconv"
	"time"
)

// SweepConfig sweep 开始前固定的参数；构造后不再修改
type SweepConfig struct {
	Scale       float64 `json:"scale"`
	RunsPerCore int     `json:"runs_per_core"`
	Iterations  int     `json:"iterations"`
	// 调用方给定的顺序，允许重复；0 表示不启用调度器
	CoreCounts []int  `json:"core_counts"`
	QueryIDs   []int  `json:"query_ids"`
	Executable string `json:"executable"`

	ResultBaseDir string `json:"result_base_dir"`
	WorkDir       string `json:"work_dir"`

	ChunkSizeLabel string `json:"chunk_size_label,omitempty"`
	ChunkSize      int    `json:"chunk_size,omitempty"`
	PCM            bool   `json:"pcm,omitempty"`
	Appendix       string `json:"appendix,omitempty"`
	HaltOnFailure  bool   `json:"halt_on_failure,omitempty"`
}

// RunPoint 网格中的一个点 (iteration, core_count)
type RunPoint struct {
	Iteration int `json:"iteration"`
	CoreCount int `json:"core_count"`
	// 在 core-count 列表中的下标
	Position int `json:"position"`
}

// Invocation 由 RunPoint 推导出的一次基准程序调用
type Invocation struct {
	Executable   string  `json:"executable"`
	ResultFile   string  `json:"result_file"`
	Scale        float64 `json:"scale"`
	RunsPerQuery int     `json:"runs_per_query"`
	Scheduler    bool    `json:"scheduler"`
	Cores        int     `json:"cores"`
	ChunkSize    int     `json:"chunk_size,omitempty"`
	PCM          bool    `json:"pcm,omitempty"`
	QueryIDs     []int   `json:"query_ids"`
}

// Args 按基准程序要求的固定顺序渲染参数（不含可执行文件本身）
func (inv Invocation) Args() []string {
	args := []string{
		"-v",
		"-o", inv.ResultFile,
		"-s", FormatScale(inv.Scale),
		"--runs", strconv.Itoa(inv.RunsPerQuery),
		"--scheduler=" + strconv.FormatBool(inv.Scheduler),
		"--cores", strconv.Itoa(inv.Cores),
	}
	if inv.ChunkSize > 0 {
		args = append(args, "--chunk_size", strconv.Itoa(inv.ChunkSize))
	}
	if inv.PCM {
		args = append(args, "--pcm")
	}
	for _, q := range inv.QueryIDs {
		args = append(args, "-q", strconv.Itoa(q))
	}
	return args
}

// FormatScale 最短十进制表示：1 -> "1"，0.1 -> "0.1"
func FormatScale(scale float64) string {
	return strconv.FormatFloat(scale, 'f', -1, 64)
}

// SweepStatus 状态接口返回的快照
type SweepStatus struct {
	Lines     []string  `json:"lines"`
	Last      string    `json:"last"`
	Done      bool      `json:"done"`
	ResultDir string    `json:"result_dir,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
