package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters for the wizard, calculator, and FAQ responder.
type SiteMetrics struct {
	wizardTransitions *prometheus.CounterVec
	wizardRejections  *prometheus.CounterVec
	calculatorTotal   prometheus.Counter
	faqQueries        *prometheus.CounterVec
	leadsCaptured     *prometheus.CounterVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		wizardTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgen",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard step transitions",
		}, []string{"from", "to"}),
		wizardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgen",
			Subsystem: "wizard",
			Name:      "rejections_total",
			Help:      "Wizard submissions rejected before any state change",
		}, []string{"reason"}),
		calculatorTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadgen",
			Subsystem: "calculator",
			Name:      "computations_total",
			Help:      "ROI calculator computations",
		}),
		faqQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgen",
			Subsystem: "faq",
			Name:      "queries_total",
			Help:      "FAQ responder queries by channel and outcome",
		}, []string{"channel", "outcome"}),
		leadsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgen",
			Subsystem: "leads",
			Name:      "captured_total",
			Help:      "Completed applications handed to the lead sink",
		}, []string{"tier", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.wizardTransitions, m.wizardRejections, m.calculatorTotal, m.faqQueries, m.leadsCaptured)
	return m
}

func (m *SiteMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.wizardTransitions.WithLabelValues(from, to).Inc()
}

func (m *SiteMetrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.wizardRejections.WithLabelValues(reason).Inc()
}

func (m *SiteMetrics) ObserveCalculation() {
	if m == nil {
		return
	}
	m.calculatorTotal.Inc()
}

func (m *SiteMetrics) ObserveFAQ(channel string, matched bool) {
	if m == nil {
		return
	}
	outcome := "fallback"
	if matched {
		outcome = "matched"
	}
	m.faqQueries.WithLabelValues(channel, outcome).Inc()
}

func (m *SiteMetrics) ObserveLead(tier string, err error) {
	if m == nil {
		return
	}
	status := "stored"
	if err != nil {
		status = "failed"
	}
	m.leadsCaptured.WithLabelValues(tier, status).Inc()
}
