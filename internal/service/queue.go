package service

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"tpch-sweep/internal/model"
)

// Task 队列中的一个 RunPoint
type Task struct {
	ID    string
	Point model.RunPoint
	run   func() error
	done  chan error
}

// Wait 阻塞直到任务执行完毕
func (t *Task) Wait() error {
	return <-t.done
}

// TaskQueue 固定 worker 数的 FIFO 队列；sweep 目前只用 1 个 worker
type TaskQueue struct {
	workers int
	tasks   chan *Task
	wg      sync.WaitGroup
	once    sync.Once
}

func NewTaskQueue(workers int) *TaskQueue {
	if workers <= 0 {
		workers = 1
	}
	return &TaskQueue{
		workers: workers,
		tasks:   make(chan *Task),
	}
}

func (q *TaskQueue) Start() {
	for i := 0; i < q.workers; i++ {
		workerID := uuid.New().String()
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for t := range q.tasks {
				slog.Debug("worker picked task", "worker", workerID, "task", t.ID,
					"iteration", t.Point.Iteration, "core_count", t.Point.CoreCount)
				t.done <- t.run()
			}
		}()
	}
}

// Submit 投递任务；在有空闲 worker 接收之前阻塞
func (q *TaskQueue) Submit(point model.RunPoint, run func() error) *Task {
	t := &Task{
		ID:    uuid.New().String(),
		Point: point,
		run:   run,
		done:  make(chan error, 1),
	}
	q.tasks <- t
	return t
}

// Close 停止接收任务并等待 worker 退出
func (q *TaskQueue) Close() {
	q.once.Do(func() {
		close(q.tasks)
		q.wg.Wait()
	})
}
