// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package refresh keeps wallet state (balances, payment history, fiat rates)
// fresh against the node. A single Scheduler emits "refresh requested"
// notifications; per-resource fetchers subscribe and fetch independently, so
// the scheduler never needs to know which resources exist.
package refresh

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexe-app/lexe-public-sub005/metrics"
)

const (
	// DefaultCooldown is the minimum gap between throttled manual refreshes.
	DefaultCooldown = 2 * time.Second
	// DefaultIdleWindow is the inactivity window before a background refresh.
	DefaultIdleWindow = time.Minute
)

// DefaultBurstSchedule front-loads refreshes right after an action so fast
// state changes surface quickly, then tapers off for slow ones (e.g. an
// on-chain confirmation).
func DefaultBurstSchedule() []time.Duration {
	return []time.Duration{
		0,
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		8 * time.Second,
		8 * time.Second,
	}
}

type SchedulerConfig struct {
	Cooldown      time.Duration
	IdleWindow    time.Duration
	BurstSchedule []time.Duration
}

// Scheduler coordinates manual, idle-triggered, and burst refreshes. Its
// three pieces of mutable state (last-fire timestamp, idle timer, burst
// in-progress flag) are owned and mutated only here.
type Scheduler struct {
	mu            sync.Mutex
	subs          []chan struct{}
	lastFire      time.Time
	burstInFlight bool
	paused        bool
	idleTimer     *time.Timer

	cooldown      time.Duration
	idleWindow    time.Duration
	burstSchedule []time.Duration

	done      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewScheduler builds a scheduler and arms its idle background timer. The
// timer is an owned resource: it is created here and canceled by Close, so
// tests can run independent scheduler instances without interference.
func NewScheduler(cfg *SchedulerConfig, logger zerolog.Logger) *Scheduler {
	s := &Scheduler{
		cooldown:      DefaultCooldown,
		idleWindow:    DefaultIdleWindow,
		burstSchedule: DefaultBurstSchedule(),
		done:          make(chan struct{}),
		logger:        logger,
	}
	if cfg != nil {
		if cfg.Cooldown > 0 {
			s.cooldown = cfg.Cooldown
		}
		if cfg.IdleWindow > 0 {
			s.idleWindow = cfg.IdleWindow
		}
		if len(cfg.BurstSchedule) > 0 {
			s.burstSchedule = cfg.BurstSchedule
		}
	}

	s.idleTimer = time.AfterFunc(s.idleWindow, s.idleFire)

	return s
}

// Subscribe registers a consumer of refresh notifications. Each consumer must
// guard against overlapping fetches of its own resource.
func (s *Scheduler) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			removed := false
			for i := range s.subs {
				if s.subs[i] == ch {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					removed = true
					break
				}
			}
			s.mu.Unlock()
			// Close owns channels it already drained from subs; only the
			// party that removed the channel may close it.
			if removed {
				close(ch)
			}
		})
	}

	return ch, unsubscribe
}

// TriggerRefresh fires a refresh unless one fired within the cool-down, in
// which case the request is dropped (logged, not queued). Reports whether it
// fired.
func (s *Scheduler) TriggerRefresh() bool {
	return s.trigger("manual", true)
}

// TriggerRefreshUnthrottled bypasses the cool-down. Used by the idle timer
// and by burst refresh, which pace themselves with explicit delays.
func (s *Scheduler) TriggerRefreshUnthrottled() {
	s.trigger("unthrottled", false)
}

func (s *Scheduler) trigger(kind string, throttled bool) bool {
	s.mu.Lock()
	if throttled && !s.lastFire.IsZero() && time.Since(s.lastFire) < s.cooldown {
		s.mu.Unlock()
		metrics.RefreshDropped.Inc()
		s.logger.Debug().Str("kind", kind).Msg("refresh throttled, dropping")
		return false
	}
	s.lastFire = time.Now()
	if !s.paused {
		s.idleTimer.Reset(s.idleWindow)
	}
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.Unlock()

	metrics.RefreshTriggered.WithLabelValues(kind).Inc()
	s.logger.Debug().Str("kind", kind).Msg("refresh fired")
	return true
}

// TriggerBurstRefresh starts a front-loaded refresh schedule in the
// background. At most one burst runs at a time; a second call while one is
// in flight is a no-op.
func (s *Scheduler) TriggerBurstRefresh() {
	s.mu.Lock()
	if s.burstInFlight {
		s.mu.Unlock()
		s.logger.Debug().Msg("burst refresh already in flight")
		return
	}
	s.burstInFlight = true
	s.mu.Unlock()

	go s.runBurst()
}

func (s *Scheduler) runBurst() {
	defer func() {
		s.mu.Lock()
		s.burstInFlight = false
		s.mu.Unlock()
	}()

	for _, wait := range s.burstSchedule {
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-s.done:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		select {
		case <-s.done:
			return
		default:
		}
		s.trigger("burst", false)
	}
}

func (s *Scheduler) idleFire() {
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	paused := s.paused
	s.mu.Unlock()
	if paused {
		return
	}
	s.trigger("idle", false)
}

// PauseBackground suspends idle polling, e.g. while the app is backgrounded.
// Manual and burst triggers still work while paused.
func (s *Scheduler) PauseBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	s.idleTimer.Stop()
}

// ResumeBackground re-arms the idle timer.
func (s *Scheduler) ResumeBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.paused = false
	s.idleTimer.Reset(s.idleWindow)
}

// Close cancels the idle timer and aborts any in-flight burst.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.idleTimer.Stop()
		for _, ch := range s.subs {
			close(ch)
		}
		s.subs = nil
		s.mu.Unlock()
	})
}
