package service

import (
	"time"

	"tpch-sweep/internal/config"
)

type ServiceContext struct {
	Config    *config.Config
	Artifacts Artifacts
	Executor  Executor

	notifier Notifier
	closers  []func()
}

func NewServiceContext(cfg *config.Config) *ServiceContext {
	return &ServiceContext{
		Config:    cfg,
		Artifacts: NewArtifacts(cfg.Paths.WorkDir),
		Executor:  NewProcessExecutor(),
	}
}

// Notifier 首次调用时才创建通知通道；只读的 serve 不会用到
func (s *ServiceContext) Notifier() Notifier {
	if s.notifier != nil {
		return s.notifier
	}

	var notifiers MultiNotifier
	tg := s.Config.Notify.Telegram
	telegram := NewTelegramClient(tg.BaseURL, tg.BotToken, tg.ChatID, time.Duration(tg.TimeoutSec)*time.Second)
	if telegram.Enabled() {
		notifiers = append(notifiers, telegram)
	}
	if mq := s.Config.Notify.MQTT; mq.Broker != "" {
		m := NewMQTTNotifier(mq.Broker, mq.ClientID, mq.Topic)
		notifiers = append(notifiers, m)
		s.closers = append(s.closers, m.Close)
	}
	if len(notifiers) == 0 {
		s.notifier = NopNotifier{}
	} else {
		s.notifier = notifiers
	}
	return s.notifier
}

// NewSweepRunner 目录名按 now 计算，每个进程只调用一次
func (s *ServiceContext) NewSweepRunner(now time.Time) *SweepRunner {
	sweep := s.Config.SweepParams()
	return NewSweepRunner(sweep, NewLayout(sweep, now), s.Artifacts, s.Executor, s.Notifier())
}

func (s *ServiceContext) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}
