package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"tpch-sweep/internal/model"
)

// Executor 同步执行一次基准程序，返回退出码。
// 只有进程无法启动时才返回 error；非0退出码不算错误。
type Executor interface {
	Execute(ctx context.Context, inv model.Invocation, workDir string, out io.Writer) (int, error)
}

type ProcessExecutor struct{}

func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{}
}

// Execute 不会因 ctx 取消而杀掉正在运行的进程，也不设超时
func (e *ProcessExecutor) Execute(_ context.Context, inv model.Invocation, workDir string, out io.Writer) (int, error) {
	cmd := exec.Command(inv.Executable, inv.Args()...)
	cmd.Dir = workDir
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("启动基准程序失败: %w", err)
}
