package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lcov_filter"

// Метки решения по BRDA-записи.
const (
	DecisionKept           = "kept"
	DecisionNotConditional = "not_conditional"
	DecisionSystem         = "system"
)

// Metrics собирает счетчики одного прогона фильтра на собственном реестре,
// чтобы не зависеть от глобального DefaultRegisterer.
type Metrics struct {
	registry *prometheus.Registry

	RecordsTotal  *prometheus.CounterVec
	BranchesTotal *prometheus.CounterVec
	RewindsTotal  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		// Количество прочитанных записей трассы по типу
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Total number of trace records read",
			},
			[]string{"kind"},
		),
		// Количество BRDA-записей по принятому решению
		BranchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "branches_total",
				Help:      "Total number of branch records by filter decision",
			},
			[]string{"decision"},
		),
		RewindsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_rewinds_total",
				Help:      "Total number of source file rewinds",
			},
		),
	}

	m.registry.MustRegister(m.RecordsTotal, m.BranchesTotal, m.RewindsTotal)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile сохраняет метрики в формате textfile-коллектора node_exporter.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics.WriteTextfile: %w", err)
	}

	return nil
}
