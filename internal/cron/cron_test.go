package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pattamap/config"
	"pattamap/internal/core"
	"pattamap/internal/telemetry"

	"go.uber.org/zap"
)

type fakePeriodResetter struct {
	mutex sync.Mutex
	calls []core.MissionPeriod
	count int64
	err   error
}

func (resetter *fakePeriodResetter) ResetPeriod(_ context.Context, period core.MissionPeriod, _ time.Time) (int64, error) {
	resetter.mutex.Lock()
	defer resetter.mutex.Unlock()
	resetter.calls = append(resetter.calls, period)
	return resetter.count, resetter.err
}

func newTestRunner(t *testing.T, conf *config.Configuration, resetter *fakePeriodResetter) *Runner {
	t.Helper()
	if conf == nil {
		conf = &config.Configuration{}
	}
	runner, cleanup, err := NewRunner(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, conf, resetter)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	t.Cleanup(cleanup)
	return runner
}

func TestNewRunner_BadTimezone(t *testing.T) {
	conf := &config.Configuration{}
	conf.Mission.Timezone = "Mars/Olympus"

	_, _, err := NewRunner(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, conf, &fakePeriodResetter{})
	if err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestNewRunner_BadSpec(t *testing.T) {
	conf := &config.Configuration{}
	conf.Mission.DailySpec = "every day at noon"

	_, _, err := NewRunner(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, conf, &fakePeriodResetter{})
	if err == nil {
		t.Fatal("expected spec parse error")
	}
}

func TestNextFire_DailyAtLocalMidnight(t *testing.T) {
	runner := newTestRunner(t, nil, &fakePeriodResetter{})

	bangkok, _ := time.LoadLocation("Asia/Bangkok")
	// 2026-08-26 是週三
	runner.now = func() time.Time {
		return time.Date(2026, 8, 26, 15, 30, 0, 0, bangkok)
	}

	daily := runner.NextFire("daily-mission-reset")
	wantDaily := time.Date(2026, 8, 27, 0, 0, 0, 0, bangkok)
	if !daily.Equal(wantDaily) {
		t.Fatalf("daily: got %v, want %v", daily, wantDaily)
	}

	weekly := runner.NextFire("weekly-mission-reset")
	wantWeekly := time.Date(2026, 8, 31, 0, 0, 0, 0, bangkok)
	if !weekly.Equal(wantWeekly) {
		t.Fatalf("weekly: got %v, want %v", weekly, wantWeekly)
	}
}

func TestNextFire_UnknownJobIsZero(t *testing.T) {
	runner := newTestRunner(t, nil, &fakePeriodResetter{})
	if !runner.NextFire("no-such-job").IsZero() {
		t.Fatal("unknown job must yield zero time")
	}
}

func TestNextFire_IgnoresHostTimezone(t *testing.T) {
	runner := newTestRunner(t, nil, &fakePeriodResetter{})

	// 同一瞬間換個表示法，觸發點不得改變
	bangkok, _ := time.LoadLocation("Asia/Bangkok")
	instant := time.Date(2026, 8, 26, 15, 30, 0, 0, bangkok)

	runner.now = func() time.Time { return instant }
	local := runner.NextFire("daily-mission-reset")

	runner.now = func() time.Time { return instant.UTC() }
	utc := runner.NextFire("daily-mission-reset")

	if !local.Equal(utc) {
		t.Fatalf("fire time depends on representation: %v vs %v", local, utc)
	}
}

func TestRunner_StartStopStates(t *testing.T) {
	runner := newTestRunner(t, nil, &fakePeriodResetter{})

	if runner.Running() {
		t.Fatal("runner must start stopped")
	}
	runner.Start()
	if !runner.Running() {
		t.Fatal("runner must report running after Start")
	}
	runner.Start() // no-op
	runner.Stop()
	if runner.Running() {
		t.Fatal("runner must report stopped after Stop")
	}
	runner.Stop() // no-op
}

func TestAddJob_RejectedWhileRunning(t *testing.T) {
	runner := newTestRunner(t, nil, &fakePeriodResetter{})
	runner.Start()
	defer runner.Stop()

	err := runner.AddJob("late-job", "0 0 0 * * *", func(context.Context, time.Time) (int64, error) {
		return 0, nil
	})
	if err == nil {
		t.Fatal("AddJob must fail while running")
	}
}

func TestRunJob_SwallowsError(t *testing.T) {
	resetter := &fakePeriodResetter{err: errors.New("collection locked")}
	runner := newTestRunner(t, nil, resetter)

	// 直接驅動任務，不等排程
	runner.runJob(runner.jobs[0], time.Now())

	if len(resetter.calls) != 1 || resetter.calls[0] != core.MissionPeriodDaily {
		t.Fatalf("expected one daily reset call, got %v", resetter.calls)
	}
	// 沒有 panic、沒有向外傳播就算通過；下一次排程照常
}

func TestRunJob_PassesFiredAt(t *testing.T) {
	resetter := &fakePeriodResetter{count: 42}
	runner := newTestRunner(t, nil, resetter)

	runner.runJob(runner.jobs[1], time.Now())

	if len(resetter.calls) != 1 || resetter.calls[0] != core.MissionPeriodWeekly {
		t.Fatalf("expected one weekly reset call, got %v", resetter.calls)
	}
}
