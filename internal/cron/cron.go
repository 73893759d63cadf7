package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pattamap/config"
	"pattamap/internal/core"
	"pattamap/internal/telemetry"

	"github.com/google/wire"
	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewRunner)

const (
	defaultTimezone   = "Asia/Bangkok"
	defaultDailySpec  = "0 0 0 * * *"   // 當地午夜
	defaultWeeklySpec = "0 0 0 * * MON" // 週一當地午夜
)

// specParser 帶秒的六欄位 cron 格式
var specParser = robfig.NewParser(
	robfig.Second | robfig.Minute | robfig.Hour | robfig.Dom | robfig.Month | robfig.Dow,
)

// JobFunc 回傳影響筆數；錯誤由 Runner 吞掉記 log，下次照常觸發
type JobFunc func(contextValue context.Context, firedAt time.Time) (int64, error)

type job struct {
	name     string
	schedule robfig.Schedule
	run      JobFunc
}

type periodResetter interface {
	ResetPeriod(contextValue context.Context, period core.MissionPeriod, firedAt time.Time) (int64, error)
}

// Runner 定時任務排程器。明確的兩種狀態：建構後是 stopped，
// Start 之後是 running，Stop 之後回到 stopped。
// 時間一律以設定的時區解讀，主機時區不影響觸發點。
type Runner struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	metric   *telemetry.Metric
	location *time.Location
	jobs     []*job

	// 測試用可換假時鐘
	now func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRunner 註冊每日與每週任務重置。spec 或時區無法解析時直接回錯，
// 寧可啟動失敗也不要排程默默不動。
func NewRunner(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	missions periodResetter,
) (*Runner, func(), error) {

	timezone := conf.Mission.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	location, locationError := time.LoadLocation(timezone)
	if locationError != nil {
		return nil, nil, fmt.Errorf("load timezone %q: %w", timezone, locationError)
	}

	runner := &Runner{
		logger:   logger,
		trace:    trace,
		metric:   metric,
		location: location,
		now:      time.Now,
	}

	dailySpec := conf.Mission.DailySpec
	if dailySpec == "" {
		dailySpec = defaultDailySpec
	}
	weeklySpec := conf.Mission.WeeklySpec
	if weeklySpec == "" {
		weeklySpec = defaultWeeklySpec
	}

	if err := runner.AddJob("daily-mission-reset", dailySpec, func(ctx context.Context, firedAt time.Time) (int64, error) {
		return missions.ResetPeriod(ctx, core.MissionPeriodDaily, firedAt)
	}); err != nil {
		return nil, nil, err
	}
	if err := runner.AddJob("weekly-mission-reset", weeklySpec, func(ctx context.Context, firedAt time.Time) (int64, error) {
		return missions.ResetPeriod(ctx, core.MissionPeriodWeekly, firedAt)
	}); err != nil {
		return nil, nil, err
	}

	cleanup := func() { runner.Stop() }
	return runner, cleanup, nil
}

// AddJob 只能在 Start 之前呼叫
func (r *Runner) AddJob(name, spec string, run JobFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return fmt.Errorf("cannot add job %q while runner is running", name)
	}
	schedule, parseError := specParser.Parse(spec)
	if parseError != nil {
		return fmt.Errorf("parse cron spec %q for job %q: %w", spec, name, parseError)
	}
	r.jobs = append(r.jobs, &job{name: name, schedule: schedule, run: run})
	return nil
}

// Start 已經在執行時為 no-op
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(j, r.stopCh)
	}
	r.logger.Info("cron runner started",
		zap.Int("jobs", len(r.jobs)),
		zap.String("timezone", r.location.String()))
}

// Stop 等進行中的任務跑完才返回；沒啟動過則 no-op
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("cron runner stopped")
}

// Running 回報目前狀態，health 檢查用
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// NextFire 此任務下一次觸發時間；找不到任務回零值
func (r *Runner) NextFire(name string) time.Time {
	for _, j := range r.jobs {
		if j.name == name {
			return j.schedule.Next(r.now().In(r.location))
		}
	}
	return time.Time{}
}

func (r *Runner) loop(j *job, stopCh chan struct{}) {
	defer r.wg.Done()
	for {
		next := j.schedule.Next(r.now().In(r.location))
		timer := time.NewTimer(next.Sub(r.now()))
		select {
		case <-stopCh:
			timer.Stop()
			return
		case firedAt := <-timer.C:
			r.runJob(j, firedAt)
		}
	}
}

// runJob 錯誤吞掉只記 log；單次失敗不影響排程繼續
func (r *Runner) runJob(j *job, firedAt time.Time) {
	ctx, span, end := r.trace.WithSpan(context.Background(), string(core.SpanCronJob))
	defer end(nil)

	started := r.now()
	meta := core.TraceCronMeta{Job: j.name, FiredAt: firedAt.In(r.location).Format(time.RFC3339)}

	count, runError := j.run(ctx, firedAt)
	meta.ResetCount = count
	meta.DurationMs = float64(r.now().Sub(started)) / float64(time.Millisecond)

	status := "success"
	if runError != nil {
		status = "error"
		errText := runError.Error()
		meta.Error = &errText
		r.logger.Error("cron job failed",
			zap.String("job", j.name),
			zap.Error(runError))
	} else {
		r.logger.Info("cron job finished",
			zap.String("job", j.name),
			zap.Int64("count", count))
	}
	r.trace.ApplyTraceAttributes(span, meta)
	r.countRun(j.name, status)
}

func (r *Runner) countRun(jobName, status string) {
	if r.metric != nil && r.metric.CronRunTotal != nil {
		r.metric.CronRunTotal.WithLabelValues(jobName, status).Inc()
	}
}
