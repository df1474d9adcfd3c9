// Package metrics holds the fixed set of Awair gauges and serves them in the
// Prometheus exposition format.
//
// Gauges are float64, so integer readings are exact up to 2^53 and values of
// 1e6 or more are rendered in exponent notation (1.234567e+06).
package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samwho/awair-prometheus-exporter/model"
)

// Namespace prefixes every exported metric name.
const Namespace = "awair"

var ErrIncompleteReading = errors.New("incomplete air data reading")

type field struct {
	name  string
	help  string
	value func(d *model.AirData) (float64, bool)
}

func intField(get func(d *model.AirData) *int64) func(d *model.AirData) (float64, bool) {
	return func(d *model.AirData) (float64, bool) {
		p := get(d)
		if p == nil {
			return 0, false
		}
		return float64(*p), true
	}
}

func floatField(get func(d *model.AirData) *float64) func(d *model.AirData) (float64, bool) {
	return func(d *model.AirData) (float64, bool) {
		p := get(d)
		if p == nil {
			return 0, false
		}
		return *p, true
	}
}

// fields is ordered the same way as the device payload.
var fields = []field{
	{"score", "Air quality score", intField(func(d *model.AirData) *int64 { return d.Score })},
	{"dew_point", "Dew point", floatField(func(d *model.AirData) *float64 { return d.DewPoint })},
	{"temp", "Temperature", floatField(func(d *model.AirData) *float64 { return d.Temp })},
	{"humid", "Humidity", floatField(func(d *model.AirData) *float64 { return d.Humid })},
	{"abs_humid", "Absolute humidity", floatField(func(d *model.AirData) *float64 { return d.AbsHumid })},
	{"co2", "CO2", intField(func(d *model.AirData) *int64 { return d.CO2 })},
	{"co2_est", "Estimated CO2", intField(func(d *model.AirData) *int64 { return d.CO2Est })},
	{"co2_est_baseline", "Estimated CO2 baseline", intField(func(d *model.AirData) *int64 { return d.CO2EstBaseline })},
	{"voc", "VOC", intField(func(d *model.AirData) *int64 { return d.VOC })},
	{"voc_baseline", "VOC baseline", intField(func(d *model.AirData) *int64 { return d.VOCBaseline })},
	{"voc_h2_raw", "VOC H2 raw", intField(func(d *model.AirData) *int64 { return d.VOCH2Raw })},
	{"voc_ethanol_raw", "VOC ethanol raw", intField(func(d *model.AirData) *int64 { return d.VOCEthanolRaw })},
	{"pm25", "PM25", intField(func(d *model.AirData) *int64 { return d.PM25 })},
	{"pm10_est", "Estimated PM10", intField(func(d *model.AirData) *int64 { return d.PM10Est })},
}

// Registry owns one gauge per Awair measurement. All gauges are registered
// up front and only their values change afterwards.
type Registry struct {
	registry *prometheus.Registry
	gauges   []prometheus.Gauge
	handler  http.Handler
}

// NewRegistry creates a registry with every Awair gauge registered and set to zero.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	gauges := make([]prometheus.Gauge, len(fields))
	for i, f := range fields {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      f.name,
			Help:      f.help,
		})
		reg.MustRegister(g)
		gauges[i] = g
	}

	return &Registry{
		registry: reg,
		gauges:   gauges,
		handler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{ErrorHandling: promhttp.HTTPErrorOnError}),
	}
}

// Names returns the fully qualified names of all gauges in payload order.
func Names() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = prometheus.BuildFQName(Namespace, "", f.name)
	}
	return names
}

// Update sets every gauge from d. Either all gauges are updated or, when d
// lacks a measurement, none of them are.
func (r *Registry) Update(d *model.AirData) error {
	if d == nil {
		return ErrIncompleteReading
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, ok := f.value(d)
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompleteReading, f.name)
		}
		values[i] = v
	}

	for i, g := range r.gauges {
		g.Set(values[i])
	}
	return nil
}

// Handler renders the current gauge values. It negotiates the exposition
// format and gzip compression with the scraper.
func (r *Registry) Handler() http.Handler {
	return r.handler
}
