package run

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DriverConfig controls how the session clock is advanced.
type DriverConfig struct {
	Step        time.Duration // simulated time per tick
	Realtime    bool          // pace ticks with a wall-clock ticker
	MaxDuration time.Duration // simulated time limit, 0 = none
}

// DefaultDriverConfig returns 50ms headless steps capped at 30 minutes.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Step:        50 * time.Millisecond,
		MaxDuration: 30 * time.Minute,
	}
}

// Driver owns a session and ticks it until the run ends, then reports the
// result to the sink.
type Driver struct {
	session *Session
	cfg     DriverConfig
	sink    ResultSink

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a driver. sink may be nil.
func NewDriver(session *Session, cfg DriverConfig, sink ResultSink) *Driver {
	if cfg.Step <= 0 {
		cfg.Step = DefaultDriverConfig().Step
	}
	return &Driver{
		session: session,
		cfg:     cfg,
		sink:    sink,
		stopCh:  make(chan struct{}),
	}
}

// Run starts the session and blocks until the run ends, Stop is called or
// ctx is canceled. A stopped run is aborted and still reported; a canceled
// one is not.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	if err := d.session.Start(); err != nil {
		return Result{}, err
	}

	slog.Info("run driver started",
		"step", d.cfg.Step,
		"realtime", d.cfg.Realtime,
		"maxDuration", d.cfg.MaxDuration)

	var err error
	if d.cfg.Realtime {
		err = d.runRealtime(ctx)
	} else {
		err = d.runHeadless(ctx)
	}
	if err != nil {
		return Result{}, err
	}

	res := d.session.Result()
	if d.sink != nil {
		if err := d.sink.Report(ctx, res); err != nil {
			return res, fmt.Errorf("reporting result: %w", err)
		}
	}
	return res, nil
}

// Stop aborts the run at the next tick.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

func (d *Driver) runRealtime(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Step)
	defer ticker.Stop()

	for !d.session.Ended() {
		select {
		case <-ctx.Done():
			slog.Info("run driver stopping")
			return ctx.Err()
		case <-d.stopCh:
			d.session.Abort("stopped")
		case <-ticker.C:
			d.step()
		}
	}
	return nil
}

func (d *Driver) runHeadless(ctx context.Context) error {
	for !d.session.Ended() {
		select {
		case <-ctx.Done():
			slog.Info("run driver stopping")
			return ctx.Err()
		case <-d.stopCh:
			d.session.Abort("stopped")
		default:
			d.step()
		}
	}
	return nil
}

func (d *Driver) step() {
	d.session.Tick(d.cfg.Step)
	if d.cfg.MaxDuration > 0 && d.session.Now() >= d.cfg.MaxDuration && !d.session.Ended() {
		d.session.Abort("time limit")
	}
}
