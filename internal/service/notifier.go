package service

import "context"

// Notifier 尽力而为的通知；实现不得返回或抛出错误
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) {}

// MultiNotifier 依次发给所有通道
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, message string) {
	for _, n := range m {
		n.Notify(ctx, message)
	}
}
