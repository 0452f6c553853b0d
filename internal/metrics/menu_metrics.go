package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MenuMetrics содержит метрики состояния меню.
type MenuMetrics struct {
	itemsTotal    prometheus.Gauge
	courseAverage *prometheus.GaugeVec
	itemsAdded    prometheus.Counter
	itemsRemoved  prometheus.Counter
	screenBuilds  *prometheus.CounterVec
}

// NewMenuMetrics регистрирует метрики в DefaultRegisterer.
func NewMenuMetrics() *MenuMetrics {
	return NewMenuMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMenuMetricsWithRegisterer регистрирует метрики в переданном реестре.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewMenuMetricsWithRegisterer(registerer prometheus.Registerer) *MenuMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MenuMetrics{
		itemsTotal: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "menu_items_total",
			Help: "Current number of menu items",
		})),
		courseAverage: register(registerer, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "menu_course_average_price",
			Help: "Average menu item price per course",
		}, []string{"course"})),
		itemsAdded: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "menu_items_added_total",
			Help: "Total number of menu items added",
		})),
		itemsRemoved: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "menu_items_removed_total",
			Help: "Total number of menu items removed",
		})),
		screenBuilds: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "menu_screen_builds_total",
			Help: "Total number of screen views built grouped by screen",
		}, []string{"screen"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// SetItemsTotal фиксирует текущий размер меню.
func (m *MenuMetrics) SetItemsTotal(n int) {
	m.itemsTotal.Set(float64(n))
}

// SetCourseAverage фиксирует среднюю цену раздела.
func (m *MenuMetrics) SetCourseAverage(course string, avg float64) {
	m.courseAverage.WithLabelValues(course).Set(avg)
}

// RecordItemAdded увеличивает счётчик добавленных блюд.
func (m *MenuMetrics) RecordItemAdded() {
	m.itemsAdded.Inc()
}

// RecordItemRemoved увеличивает счётчик удалённых блюд.
func (m *MenuMetrics) RecordItemRemoved() {
	m.itemsRemoved.Inc()
}

// RecordScreenBuild учитывает построение экрана.
func (m *MenuMetrics) RecordScreenBuild(screen string) {
	m.screenBuilds.WithLabelValues(screen).Inc()
}
