package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodshop/internal/middleware"
	"foodshop/internal/model"
	"foodshop/internal/service"
)

func TestSessionSweepTask_Sweep(t *testing.T) {
	sessions := service.NewSessionStore(time.Hour)
	now := time.Now()
	sessions.SetClock(func() time.Time { return now })

	sessions.Create(&model.Account{ID: "u1"})
	sessions.Create(&model.Account{ID: "u2"})
	now = now.Add(2 * time.Hour)
	sessions.Create(&model.Account{ID: "u3"})

	task := NewSessionSweepTask(sessions, middleware.NewIPRateLimiter(10), zap.NewNop())
	task.Sweep()

	assert.Equal(t, 1, sessions.Len())
}

func TestSessionSweepTask_StartStop(t *testing.T) {
	sessions := service.NewSessionStore(time.Hour)
	task := NewSessionSweepTask(sessions, nil, zap.NewNop())
	task.SetSpec("@every 1h")

	require.NoError(t, task.Start())
	task.Stop()

	bad := NewSessionSweepTask(sessions, nil, zap.NewNop())
	bad.SetSpec("not a cron spec")
	assert.Error(t, bad.Start())
}
