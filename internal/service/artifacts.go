package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tpch-sweep/internal/model"
)

const (
	StatusFileName = "current_run.status"
	OutputFileName = "current_run.out"
	NameFileName   = "current_run.name"

	DoneLine = "Done"
)

// Artifacts 三个运行期文本文件，路径相对 WorkDir
type Artifacts struct {
	StatusPath string
	OutputPath string
	NamePath   string
}

func NewArtifacts(workDir string) Artifacts {
	return Artifacts{
		StatusPath: filepath.Join(workDir, StatusFileName),
		OutputPath: filepath.Join(workDir, OutputFileName),
		NamePath:   filepath.Join(workDir, NameFileName),
	}
}

// Reset 删除旧文件并重新创建空文件
func (a Artifacts) Reset() error {
	for _, p := range []string{a.StatusPath, a.OutputPath, a.NamePath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("删除 %s 失败: %w", p, err)
		}
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("创建 %s 失败: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("关闭 %s 失败: %w", p, err)
		}
	}
	return nil
}

func (a Artifacts) AppendStatus(line string) error {
	f, err := os.OpenFile(a.StatusPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("打开状态文件失败: %w", err)
	}
	if _, err := io.WriteString(f, line+"\n"); err != nil {
		f.Close()
		return fmt.Errorf("写入状态文件失败: %w", err)
	}
	return f.Close()
}

// OpenOutput 以追加方式打开输出捕获文件，调用方负责关闭
func (a Artifacts) OpenOutput() (*os.File, error) {
	f, err := os.OpenFile(a.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}
	return f, nil
}

func (a Artifacts) WriteName(resultDir string) error {
	if err := os.WriteFile(a.NamePath, []byte(resultDir+"\n"), 0o644); err != nil {
		return fmt.Errorf("写入名称文件失败: %w", err)
	}
	return nil
}

// Snapshot 读取当前进度；文件不存在视为尚未开始
func (a Artifacts) Snapshot() (*model.SweepStatus, error) {
	st := &model.SweepStatus{Lines: []string{}, CheckedAt: time.Now()}

	f, err := os.Open(a.StatusPath)
	switch {
	case err == nil:
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			st.Lines = append(st.Lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("读取状态文件失败: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("打开状态文件失败: %w", err)
	}

	if n := len(st.Lines); n > 0 {
		st.Last = st.Lines[n-1]
		st.Done = st.Last == DoneLine
	}

	name, err := os.ReadFile(a.NamePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取名称文件失败: %w", err)
	}
	st.ResultDir = strings.TrimSpace(string(name))
	return st, nil
}

func StatusLine(point model.RunPoint) string {
	return fmt.Sprintf("Running iteration %d, core count %d...", point.Iteration, point.CoreCount)
}
