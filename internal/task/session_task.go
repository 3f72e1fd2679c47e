package task

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"foodshop/internal/middleware"
	"foodshop/internal/service"
)

// DefaultSweepSpec 每 10 分钟清理一次
const DefaultSweepSpec = "0 0/10 * * * *"

// limiterIdle 登录限流条目空闲多久后回收
const limiterIdle = time.Hour

// SessionSweepTask 定时清理过期会话与空闲的登录限流条目
type SessionSweepTask struct {
	sessions *service.SessionStore
	limiter  *middleware.IPRateLimiter
	cron     *cron.Cron
	spec     string
	log      *zap.Logger
}

// NewSessionSweepTask limiter 可为 nil
func NewSessionSweepTask(sessions *service.SessionStore, limiter *middleware.IPRateLimiter, log *zap.Logger) *SessionSweepTask {
	return &SessionSweepTask{
		sessions: sessions,
		limiter:  limiter,
		cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:     DefaultSweepSpec,
		log:      log,
	}
}

// SetSpec 修改调度表达式，需在 Start 前调用
func (t *SessionSweepTask) SetSpec(spec string) {
	t.spec = spec
}

// Start 启动定时任务
func (t *SessionSweepTask) Start() error {
	// 首次执行
	go t.Sweep()

	if _, err := t.cron.AddFunc(t.spec, t.Sweep); err != nil {
		return err
	}

	t.cron.Start()
	t.log.Info("会话清理任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *SessionSweepTask) Stop() {
	<-t.cron.Stop().Done()
	t.log.Info("会话清理任务已停止")
}

// Sweep 执行一次清理
func (t *SessionSweepTask) Sweep() {
	expired := t.sessions.Sweep()

	idle := 0
	if t.limiter != nil {
		idle = t.limiter.Cleanup(limiterIdle)
	}

	if expired > 0 || idle > 0 {
		t.log.Info("清理完成",
			zap.Int("expired_sessions", expired),
			zap.Int("idle_limiters", idle),
			zap.Int("active_sessions", t.sessions.Len()))
	}
}
