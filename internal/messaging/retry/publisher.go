// Package retry оборачивает паблишер событий меню повторами с экспоненциальной
// задержкой и circuit breaker'ом, чтобы недоступная Kafka не тормозила каждое изменение меню.
package retry

import (
	"errors"
	"sync"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

// ErrCircuitOpen возвращается, пока breaker разомкнут.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Config конфигурация повторов.
type Config struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultConfig возвращает конфигурацию по умолчанию. Задержки короткие:
// публикация идёт синхронно внутри запроса на изменение меню.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      500 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialDelay < 0 {
		c.InitialDelay = 0
	}
	if c.MaxDelay < c.InitialDelay {
		c.MaxDelay = c.InitialDelay
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = 1
	}
	return c
}

// Publisher повторяет неудачные публикации и прекращает попытки, пока breaker разомкнут.
type Publisher struct {
	next    domain.MenuEventPublisher
	config  Config
	breaker *CircuitBreaker
	logger  *log.Entry
	sleep   func(time.Duration)
}

// Option настраивает Publisher.
type Option func(*Publisher)

// WithBreaker задаёт circuit breaker.
func WithBreaker(breaker *CircuitBreaker) Option {
	return func(p *Publisher) {
		p.breaker = breaker
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSleep подменяет ожидание между попытками (для тестов).
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Publisher) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// NewPublisher оборачивает next.
func NewPublisher(next domain.MenuEventPublisher, config Config, opts ...Option) *Publisher {
	p := &Publisher{
		next:   next,
		config: config.normalized(),
		logger: log.WithField("component", "retry-publisher"),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish отправляет событие, повторяя временные ошибки.
func (p *Publisher) Publish(event domain.MenuEvent) error {
	var lastErr error
	delay := p.config.InitialDelay
	fields := log.Fields{
		"item_id":    event.ItemID,
		"event_type": event.Type,
	}

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err := p.publishOnce(event)
		if err == nil {
			if attempt > 1 {
				p.logger.WithFields(fields).WithField("attempt", attempt).Info("menu event published after retry")
			}
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			p.logger.WithFields(fields).WithError(err).Debug("menu event publish failed with non-retryable error")
			return err
		}

		if attempt < p.config.MaxAttempts {
			p.logger.WithFields(fields).WithFields(log.Fields{
				"attempt": attempt,
				"delay":   delay,
			}).WithError(err).Warn("menu event publish failed, retrying")

			p.sleep(delay)

			delay = time.Duration(float64(delay) * p.config.BackoffFactor)
			if delay > p.config.MaxDelay {
				delay = p.config.MaxDelay
			}
		}
	}

	p.logger.WithFields(fields).WithField("max_attempts", p.config.MaxAttempts).WithError(lastErr).
		Error("menu event publish failed after all attempts")
	return lastErr
}

func (p *Publisher) publishOnce(event domain.MenuEvent) error {
	if p.breaker == nil {
		return p.next.Publish(event)
	}
	return p.breaker.Execute(string(event.Type), func() error {
		return p.next.Publish(event)
	})
}

// shouldRetry отсекает ошибки, которые повтор не исправит.
func shouldRetry(err error) bool {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return false
	case errors.Is(err, sarama.ErrMessageSizeTooLarge), errors.Is(err, sarama.ErrInvalidMessage):
		return false
	default:
		return true
	}
}

var _ domain.MenuEventPublisher = (*Publisher)(nil)

// CircuitState состояние breaker'а.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker размыкается после maxFailures ошибок подряд и через resetTimeout
// пропускает одну пробную операцию.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time
	logger       *log.Entry

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       CircuitState
}

// NewCircuitBreaker создаёт breaker в замкнутом состоянии.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *log.Entry) *CircuitBreaker {
	if logger == nil {
		logger = log.WithField("component", "circuit-breaker")
	}
	if maxFailures <= 0 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
		logger:       logger,
		state:        CircuitClosed,
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute выполняет fn, если breaker его пропускает.
func (cb *CircuitBreaker) Execute(operation string, fn func() error) error {
	if !cb.allow(operation) {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
			if cb.state != CircuitOpen {
				cb.logger.WithFields(log.Fields{
					"operation": operation,
					"failures":  cb.failures,
				}).Warn("circuit breaker opened")
			}
			cb.state = CircuitOpen
		}
		return err
	}

	if cb.state == CircuitHalfOpen {
		cb.logger.WithField("operation", operation).Info("circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failures = 0
	return nil
}

func (cb *CircuitBreaker) allow(operation string) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if cb.now().Sub(cb.lastFailure) <= cb.resetTimeout {
			return false
		}
		cb.state = CircuitHalfOpen
		cb.logger.WithField("operation", operation).Info("circuit breaker half-open")
		return true
	case CircuitHalfOpen:
		// пробная операция уже выполняется
		return false
	default:
		return true
	}
}
