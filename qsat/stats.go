package qsat

import "github.com/prometheus/client_golang/prometheus"

// Stats is the §6 Downstream statistics surface: "num_rounds,
// num_predicates, plus both kernels' stats merged".
type Stats struct {
	NumRounds     int
	NumPredicates int
	Kernel        kernelStats
}

// Register publishes a one-shot snapshot of s as three gauges against reg,
// so a host process embedding this engine can export
// qsat_num_rounds/qsat_num_predicates/qsat_kernel_stat without the core
// itself depending on a running metrics server or the global default
// registry. Call again with a fresh Stats after each Apply; reg.Unregister
// the previous gauges first to avoid a duplicate-metric collision.
func (s Stats) Register(reg *prometheus.Registry) error {
	rounds := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qsat_num_rounds",
		Help: "Number of search-loop rounds in the last qsat tactic application.",
	})
	predicates := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qsat_num_predicates",
		Help: "Number of theory atoms abstracted into proxies in the last qsat tactic application.",
	})
	kernel := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qsat_kernel_stat",
		Help: "Merged Z3 kernel statistics from the last qsat tactic application, keyed by stat name.",
	}, []string{"stat"})

	rounds.Set(float64(s.NumRounds))
	predicates.Set(float64(s.NumPredicates))
	for k, v := range s.Kernel {
		kernel.WithLabelValues(k).Set(v)
	}

	for _, c := range []prometheus.Collector{rounds, predicates, kernel} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
