// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package refresh

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// countSignals drains a subscription into an atomic counter.
func countSignals(s *Scheduler) *atomic.Int64 {
	var n atomic.Int64
	ch, _ := s.Subscribe()
	go func() {
		for range ch {
			n.Add(1)
		}
	}()
	return &n
}

func TestTriggerRefreshThrottles(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:   100 * time.Millisecond,
		IdleWindow: time.Hour,
	}, zerolog.Nop())
	defer s.Close()

	require.True(t, s.TriggerRefresh())
	// Within the cool-down the request is dropped, not queued.
	require.False(t, s.TriggerRefresh())

	time.Sleep(150 * time.Millisecond)
	require.True(t, s.TriggerRefresh())
}

func TestTriggerRefreshUnthrottledBypassesCooldown(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:   time.Hour,
		IdleWindow: time.Hour,
	}, zerolog.Nop())
	defer s.Close()

	n := countSignals(s)

	require.True(t, s.TriggerRefresh())
	s.TriggerRefreshUnthrottled()

	require.Eventually(t, func() bool { return n.Load() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestBurstRefreshSingleFlight(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:      time.Hour,
		IdleWindow:    time.Hour,
		BurstSchedule: []time.Duration{0, 60 * time.Millisecond, 60 * time.Millisecond},
	}, zerolog.Nop())
	defer s.Close()

	n := countSignals(s)

	// The second call must fold into the burst already in flight.
	s.TriggerBurstRefresh()
	s.TriggerBurstRefresh()

	require.Eventually(t, func() bool { return n.Load() == 3 },
		2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	require.EqualValues(t, 3, n.Load())
}

func TestBurstRefreshRunsAgainAfterCompletion(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:      time.Hour,
		IdleWindow:    time.Hour,
		BurstSchedule: []time.Duration{0},
	}, zerolog.Nop())
	defer s.Close()

	n := countSignals(s)

	s.TriggerBurstRefresh()
	require.Eventually(t, func() bool { return n.Load() == 1 },
		time.Second, 10*time.Millisecond)

	s.TriggerBurstRefresh()
	require.Eventually(t, func() bool { return n.Load() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestIdleTimerFires(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:   time.Hour,
		IdleWindow: 50 * time.Millisecond,
	}, zerolog.Nop())
	defer s.Close()

	n := countSignals(s)

	require.Eventually(t, func() bool { return n.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestPauseStopsIdlePolling(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:   time.Hour,
		IdleWindow: 50 * time.Millisecond,
	}, zerolog.Nop())
	defer s.Close()

	s.PauseBackground()
	n := countSignals(s)

	time.Sleep(150 * time.Millisecond)
	require.EqualValues(t, 0, n.Load())

	s.ResumeBackground()
	require.Eventually(t, func() bool { return n.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestCloseClosesSubscribers(t *testing.T) {
	s := NewScheduler(nil, zerolog.Nop())
	ch, _ := s.Subscribe()

	s.Close()
	s.Close() // idempotent

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed")
	}
}

func TestUnsubscribeAfterClose(t *testing.T) {
	s := NewScheduler(nil, zerolog.Nop())
	_, unsub := s.Subscribe()

	s.Close()
	// Close already tore the channel down; a late unsubscribe from a
	// consumer winding down must be a no-op, not a double close.
	unsub()
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := NewScheduler(&SchedulerConfig{
		Cooldown:   time.Hour,
		IdleWindow: time.Hour,
	}, zerolog.Nop())
	defer s.Close()

	ch, unsub := s.Subscribe()
	unsub()
	unsub() // safe to call twice

	s.TriggerRefresh()
	_, ok := <-ch
	require.False(t, ok)
}
