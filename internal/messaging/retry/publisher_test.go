package retry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

type scriptedPublisher struct {
	mu     sync.Mutex
	errs   []error
	calls  int
	events []domain.MenuEvent
}

func (p *scriptedPublisher) Publish(event domain.MenuEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.events = append(p.events, event)
	if len(p.errs) == 0 {
		return nil
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return err
}

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.DebugLevel)
	return logger.WithField("component", "retry-test")
}

func recordSleeps(delays *[]time.Duration) Option {
	return WithSleep(func(d time.Duration) {
		*delays = append(*delays, d)
	})
}

var sampleEvent = domain.MenuEvent{Type: domain.MenuEventItemAdded, ItemID: "item-1", Course: domain.CourseMain, Price: 12}

func TestPublisher_RetriesWithBackoff(t *testing.T) {
	errDown := errors.New("broker down")
	next := &scriptedPublisher{errs: []error{errDown, errDown}}
	var delays []time.Duration

	p := NewPublisher(next, Config{
		MaxAttempts:   4,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      15 * time.Millisecond,
		BackoffFactor: 2,
	}, WithLogger(testLogger()), recordSleeps(&delays))

	require.NoError(t, p.Publish(sampleEvent))
	require.Equal(t, 3, next.calls)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, delays)
	require.Equal(t, sampleEvent, next.events[2])
}

func TestPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	errDown := errors.New("broker down")
	next := &scriptedPublisher{errs: []error{errDown, errDown, errDown, errDown}}
	var delays []time.Duration

	p := NewPublisher(next, Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Second, BackoffFactor: 3},
		WithLogger(testLogger()), recordSleeps(&delays))

	err := p.Publish(sampleEvent)
	require.ErrorIs(t, err, errDown)
	require.Equal(t, 3, next.calls)
	require.Equal(t, []time.Duration{time.Millisecond, 3 * time.Millisecond}, delays)
}

func TestPublisher_DoesNotRetryPermanentErrors(t *testing.T) {
	next := &scriptedPublisher{errs: []error{fmt.Errorf("failed to send message: %w", sarama.ErrMessageSizeTooLarge)}}
	var delays []time.Duration

	p := NewPublisher(next, DefaultConfig(), WithLogger(testLogger()), recordSleeps(&delays))

	err := p.Publish(sampleEvent)
	require.ErrorIs(t, err, sarama.ErrMessageSizeTooLarge)
	require.Equal(t, 1, next.calls)
	require.Empty(t, delays)
}

func TestPublisher_BreakerStopsCallsWhileOpen(t *testing.T) {
	errDown := errors.New("broker down")
	next := &scriptedPublisher{errs: []error{errDown, errDown, errDown, errDown}}
	breaker := NewCircuitBreaker(2, time.Minute, testLogger())
	var delays []time.Duration

	p := NewPublisher(next, Config{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1},
		WithBreaker(breaker), WithLogger(testLogger()), recordSleeps(&delays))

	err := p.Publish(sampleEvent)
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.Equal(t, 2, next.calls)
	require.Equal(t, CircuitOpen, breaker.State())

	// пока breaker разомкнут, вызовы до Kafka не доходят
	require.ErrorIs(t, p.Publish(sampleEvent), ErrCircuitOpen)
	require.Equal(t, 2, next.calls)
}

func TestConfig_Normalized(t *testing.T) {
	cfg := Config{MaxAttempts: 0, InitialDelay: -time.Second, MaxDelay: -time.Second, BackoffFactor: 0.5}.normalized()
	require.Equal(t, DefaultConfig().MaxAttempts, cfg.MaxAttempts)
	require.Zero(t, cfg.InitialDelay)
	require.Zero(t, cfg.MaxDelay)
	require.Equal(t, 1.0, cfg.BackoffFactor)
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, 10*time.Second, testLogger())
	cb.now = func() time.Time { return now }

	errFail := errors.New("fail")
	fail := func() error { return errFail }
	ok := func() error { return nil }

	require.ErrorIs(t, cb.Execute("op", fail), errFail)
	require.Equal(t, CircuitClosed, cb.State())
	require.ErrorIs(t, cb.Execute("op", fail), errFail)
	require.Equal(t, CircuitOpen, cb.State())

	called := false
	err := cb.Execute("op", func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.False(t, called)

	now = now.Add(11 * time.Second)
	require.ErrorIs(t, cb.Execute("op", fail), errFail)
	require.Equal(t, CircuitOpen, cb.State(), "failed probe reopens the breaker")

	now = now.Add(11 * time.Second)
	require.NoError(t, cb.Execute("op", ok))
	require.Equal(t, CircuitClosed, cb.State())

	require.ErrorIs(t, cb.Execute("op", fail), errFail)
	require.Equal(t, CircuitClosed, cb.State(), "failure counter resets after success")
}

func TestCircuitState_String(t *testing.T) {
	require.Equal(t, "closed", CircuitClosed.String())
	require.Equal(t, "open", CircuitOpen.String())
	require.Equal(t, "half-open", CircuitHalfOpen.String())
	require.Equal(t, "unknown", CircuitState(42).String())
}
