package service

import (
	"fmt"
	"path/filepath"
	"sort"

	"tpch-sweep/internal/model"
)

// BuildInvocation 把一个 RunPoint 映射成具体调用参数，纯函数，无 I/O
func BuildInvocation(cfg model.SweepConfig, point model.RunPoint, resultDir string) model.Invocation {
	scheduler := point.CoreCount > 0
	runs := cfg.RunsPerCore
	if scheduler {
		runs = cfg.RunsPerCore * point.CoreCount
	}
	return model.Invocation{
		Executable:   cfg.Executable,
		ResultFile:   ResultFilePath(resultDir, point.CoreCount, point.Iteration),
		Scale:        cfg.Scale,
		RunsPerQuery: runs,
		Scheduler:    scheduler,
		Cores:        point.CoreCount,
		ChunkSize:    cfg.ChunkSize,
		PCM:          cfg.PCM,
		QueryIDs:     canonicalQueryIDs(cfg.QueryIDs),
	}
}

// ResultFilePath 结果文件按 (core_count, iteration) 命名，同一目录重跑会覆盖同一文件
func ResultFilePath(resultDir string, coreCount, iteration int) string {
	return filepath.Join(resultDir, fmt.Sprintf("%dcores-%d.json", coreCount, iteration))
}

// canonicalQueryIDs 升序去重，不修改入参
func canonicalQueryIDs(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	n := 0
	for i, id := range out {
		if i > 0 && id == out[n-1] {
			continue
		}
		out[n] = id
		n++
	}
	return out[:n]
}
