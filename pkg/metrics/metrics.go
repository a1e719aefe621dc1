// Package metrics exports receiver counters and channel values to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotalks/sbus.go/pkg/telemetry"
)

// NewRegistry creates a registry with Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler serving reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

var (
	bytesDesc = prometheus.NewDesc("sbus_bytes_total",
		"Total bytes read from the receiver.", nil, nil)
	discardedDesc = prometheus.NewDesc("sbus_discarded_bytes_total",
		"Bytes dropped while waiting for a start marker.", nil, nil)
	framesDesc = prometheus.NewDesc("sbus_frames_total",
		"Assembled frames by validation result.", []string{"result"}, nil)
	timeoutsDesc = prometheus.NewDesc("sbus_timeouts_total",
		"Frame timeouts (stale partial frame or signal loss).", nil, nil)
	lockedDesc = prometheus.NewDesc("sbus_locked",
		"1 if the last frame was valid and recent.", nil, nil)
	channelDesc = prometheus.NewDesc("sbus_channel_raw",
		"Last decoded raw channel magnitude.", []string{"channel"}, nil)
)

// Collector reads a receiver on every scrape.
type Collector struct {
	Source telemetry.Source
}

// NewCollector creates a Collector.
func NewCollector(src telemetry.Source) *Collector {
	return &Collector{Source: src}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- bytesDesc
	ch <- discardedDesc
	ch <- framesDesc
	ch <- timeoutsDesc
	ch <- lockedDesc
	ch <- channelDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.Source.Stats()
	ch <- prometheus.MustNewConstMetric(bytesDesc, prometheus.CounterValue, float64(stats.Bytes))
	ch <- prometheus.MustNewConstMetric(discardedDesc, prometheus.CounterValue, float64(stats.Discarded))
	ch <- prometheus.MustNewConstMetric(framesDesc, prometheus.CounterValue, float64(stats.Frames), "ok")
	ch <- prometheus.MustNewConstMetric(framesDesc, prometheus.CounterValue, float64(stats.BadFrames), "checksum")
	ch <- prometheus.MustNewConstMetric(timeoutsDesc, prometheus.CounterValue, float64(stats.Timeouts))
	var locked float64
	if c.Source.State().IsLocked() {
		locked = 1
	}
	ch <- prometheus.MustNewConstMetric(lockedDesc, prometheus.GaugeValue, locked)
	for n, v := range c.Source.Channels().Values() {
		ch <- prometheus.MustNewConstMetric(channelDesc, prometheus.GaugeValue, float64(v), strconv.Itoa(n))
	}
}
