package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tpch-sweep/internal/model"
)

var ErrRunFailed = errors.New("benchmark run failed")

const (
	MsgStarting = "Starting benchmarks..."
	MsgComplete = "Benchmarks complete!"
)

func IterationCompleteMessage(iteration, total int) string {
	return fmt.Sprintf("Iteration %d of %d complete!", iteration+1, total)
}

type SweepState string

const (
	StateInitializing      SweepState = "initializing"
	StateRunning           SweepState = "running"
	StateIterationComplete SweepState = "iteration_complete"
	StateDone              SweepState = "done"
)

// RunFailure 非0退出的 RunPoint
type RunFailure struct {
	Point    model.RunPoint `json:"point"`
	ExitCode int            `json:"exit_code"`
}

type SweepResult struct {
	SweepID   string       `json:"sweep_id"`
	ResultDir string       `json:"result_dir"`
	Points    int          `json:"points"`
	Failures  []RunFailure `json:"failures"`
}

type SweepRunner struct {
	cfg       model.SweepConfig
	layout    Layout
	artifacts Artifacts
	executor  Executor
	notifier  Notifier
	log       *slog.Logger
	state     SweepState
}

func NewSweepRunner(cfg model.SweepConfig, layout Layout, artifacts Artifacts, executor Executor, notifier Notifier) *SweepRunner {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SweepRunner{
		cfg:       cfg,
		layout:    layout,
		artifacts: artifacts,
		executor:  executor,
		notifier:  notifier,
		log:       slog.Default(),
	}
}

func (r *SweepRunner) Layout() Layout {
	return r.layout
}

func (r *SweepRunner) State() SweepState {
	return r.state
}

func (r *SweepRunner) transition(log *slog.Logger, s SweepState, attrs ...any) {
	r.state = s
	log.Info("sweep state", append([]any{"state", s}, attrs...)...)
}

// Run 顺序执行整个网格：
// Initializing -> Running(iteration, core) -> IterationComplete(iteration) -> ... -> Done
func (r *SweepRunner) Run(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{
		SweepID:   uuid.New().String(),
		ResultDir: r.layout.Dir,
	}
	log := r.log.With("sweep_id", result.SweepID)

	// Initializing：文件系统错误在任何 run 之前直接失败
	r.transition(log, StateInitializing, "result_dir", r.layout.Dir)
	if err := r.layout.Prepare(); err != nil {
		return nil, err
	}
	if err := r.artifacts.Reset(); err != nil {
		return nil, err
	}
	log.Debug("sweep config", "iterations", r.cfg.Iterations, "core_counts", r.cfg.CoreCounts,
		"query_ids", r.cfg.QueryIDs)
	r.notifier.Notify(ctx, MsgStarting)

	queue := NewTaskQueue(1)
	queue.Start()
	defer queue.Close()

	lastPos := len(r.cfg.CoreCounts) - 1
	for _, point := range BuildGrid(r.cfg.Iterations, r.cfg.CoreCounts) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("sweep 被中断: %w", err)
		}

		point := point
		r.transition(log, StateRunning, "iteration", point.Iteration, "core_count", point.CoreCount)
		task := queue.Submit(point, func() error {
			return r.runPoint(ctx, log, point, result)
		})
		if err := task.Wait(); err != nil {
			return result, err
		}
		result.Points++

		if point.Position == lastPos {
			r.transition(log, StateIterationComplete, "iteration", point.Iteration)
			r.notifier.Notify(ctx, IterationCompleteMessage(point.Iteration, r.cfg.Iterations))
		}
	}

	if err := r.artifacts.AppendStatus(DoneLine); err != nil {
		return result, err
	}
	if err := r.artifacts.WriteName(r.layout.Dir); err != nil {
		return result, err
	}
	r.transition(log, StateDone, "points", result.Points, "failures", len(result.Failures))
	r.notifier.Notify(ctx, MsgComplete)
	return result, nil
}

func (r *SweepRunner) runPoint(ctx context.Context, log *slog.Logger, point model.RunPoint, result *SweepResult) error {
	if err := r.artifacts.AppendStatus(StatusLine(point)); err != nil {
		return err
	}
	inv := BuildInvocation(r.cfg, point, r.layout.Dir)

	out, err := r.artifacts.OpenOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	log.Debug("running benchmark", "iteration", point.Iteration, "core_count", point.CoreCount,
		"args", inv.Args())
	code, err := r.executor.Execute(ctx, inv, r.cfg.WorkDir, out)
	if err != nil {
		return fmt.Errorf("iteration %d, core count %d: %w", point.Iteration, point.CoreCount, err)
	}

	// 退出码写在输出文件里，状态文件保持每个点一行
	fmt.Fprintf(out, "[tpch-sweep] iteration %d, core count %d exited with status %d\n",
		point.Iteration, point.CoreCount, code)
	if code == 0 {
		return nil
	}

	log.Warn("benchmark exited non-zero", "iteration", point.Iteration,
		"core_count", point.CoreCount, "exit_code", code)
	result.Failures = append(result.Failures, RunFailure{Point: point, ExitCode: code})
	if r.cfg.HaltOnFailure {
		return fmt.Errorf("%w: iteration %d, core count %d, exit status %d",
			ErrRunFailed, point.Iteration, point.CoreCount, code)
	}
	return nil
}
