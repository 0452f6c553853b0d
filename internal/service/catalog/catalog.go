// Package catalog владеет коллекцией блюд: только он изменяет меню,
// остальные слои получают снимки через Snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
	"github.com/vladislavdragonenkov/menuboard/internal/metrics"
	"github.com/vladislavdragonenkov/menuboard/internal/screen"
)

// NewMenuItem — данные для создания блюда.
type NewMenuItem struct {
	Name        string
	Description string
	Price       float64
	Course      string
}

// Options задаёт необязательные зависимости каталога.
type Options struct {
	Logger    *log.Entry
	Publisher domain.MenuEventPublisher
	Metrics   *metrics.MenuMetrics
	Clock     func() time.Time
	NewID     func() string
}

// Option настраивает Catalog.
type Option func(*Options)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithPublisher задаёт паблишер событий изменения меню.
func WithPublisher(publisher domain.MenuEventPublisher) Option {
	return func(opts *Options) {
		opts.Publisher = publisher
	}
}

// WithMetrics задаёт prometheus-метрики меню.
func WithMetrics(m *metrics.MenuMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов).
func WithIDGenerator(newID func() string) Option {
	return func(opts *Options) {
		opts.NewID = newID
	}
}

// Catalog — единственный владелец меню.
type Catalog struct {
	repo      domain.MenuRepository
	publisher domain.MenuEventPublisher
	metrics   *metrics.MenuMetrics
	logger    *log.Entry
	now       func() time.Time
	newID     func() string

	// metricsMu упорядочивает чтение снимка и запись gauge'ей между изменениями.
	metricsMu sync.Mutex
}

// New создаёт каталог поверх репозитория.
func New(repo domain.MenuRepository, opts ...Option) *Catalog {
	options := Options{
		Clock: func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.WithField("component", "catalog")
	}

	return &Catalog{
		repo:      repo,
		publisher: options.Publisher,
		metrics:   options.Metrics,
		logger:    options.Logger,
		now:       options.Clock,
		newID:     options.NewID,
	}
}

// AddItem проверяет данные, назначает ID и добавляет блюдо в конец меню.
func (c *Catalog) AddItem(ctx context.Context, in NewMenuItem) (domain.MenuItem, error) {
	item := domain.MenuItem{
		ID:          c.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Course:      domain.Course(strings.ToLower(strings.TrimSpace(in.Course))),
		CreatedAt:   c.now(),
	}
	if errs := item.ValidateInvariants(); len(errs) > 0 {
		return domain.MenuItem{}, errors.Join(errs...)
	}

	if err := c.repo.Add(ctx, item); err != nil {
		return domain.MenuItem{}, fmt.Errorf("add menu item: %w", err)
	}

	c.logger.WithFields(log.Fields{
		"item_id": item.ID,
		"course":  item.Course,
	}).Info("menu item added")

	if c.metrics != nil {
		c.metrics.RecordItemAdded()
	}
	c.afterChange(ctx, domain.MenuEvent{
		Type:       domain.MenuEventItemAdded,
		ItemID:     item.ID,
		Name:       item.Name,
		Course:     item.Course,
		Price:      item.Price,
		OccurredAt: item.CreatedAt,
	})

	return item, nil
}

// RemoveItem удаляет блюдо по ID.
func (c *Catalog) RemoveItem(ctx context.Context, id string) error {
	item, err := c.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.repo.Remove(ctx, id); err != nil {
		return err
	}

	c.logger.WithField("item_id", id).Info("menu item removed")

	if c.metrics != nil {
		c.metrics.RecordItemRemoved()
	}
	c.afterChange(ctx, domain.MenuEvent{
		Type:       domain.MenuEventItemRemoved,
		ItemID:     item.ID,
		Name:       item.Name,
		Course:     item.Course,
		Price:      item.Price,
		OccurredAt: c.now(),
	})

	return nil
}

// Item возвращает блюдо по ID.
func (c *Catalog) Item(ctx context.Context, id string) (domain.MenuItem, error) {
	return c.repo.Get(ctx, id)
}

// Snapshot возвращает текущее меню в порядке добавления.
func (c *Catalog) Snapshot(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu snapshot: %w", err)
	}
	return items, nil
}

// Screen строит модель экрана по текущему снимку меню.
func (c *Catalog) Screen(ctx context.Context, dest screen.Destination) (screen.View, error) {
	items, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view, err := screen.Build(dest, items)
	if err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.RecordScreenBuild(view.Screen())
	}
	return view, nil
}

// Count возвращает количество блюд.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	return c.repo.Count(ctx)
}

// RefreshMetrics выставляет gauge'и по текущему содержимому хранилища.
// Вызывается при старте, чтобы меню, уже лежащее в postgres или redis, сразу попало в метрики.
func (c *Catalog) RefreshMetrics(ctx context.Context) error {
	if c.metrics == nil {
		return nil
	}

	c.metricsMu.Lock()
	defer c.metricsMu.Unlock()

	items, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh menu metrics: %w", err)
	}
	c.metrics.SetItemsTotal(menu.TotalCount(items))
	for _, avg := range menu.CourseAverages(items) {
		c.metrics.SetCourseAverage(string(avg.Course), avg.Average)
	}
	return nil
}

// afterChange обновляет gauge'и и публикует событие. Ошибки здесь не откатывают изменение.
func (c *Catalog) afterChange(ctx context.Context, event domain.MenuEvent) {
	if err := c.RefreshMetrics(ctx); err != nil {
		c.logger.WithError(err).Warn("failed to refresh menu metrics")
	}

	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(event); err != nil {
		c.logger.WithError(err).WithFields(log.Fields{
			"item_id":    event.ItemID,
			"event_type": event.Type,
		}).Warn("failed to publish menu event")
	}
}
