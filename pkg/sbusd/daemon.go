// Package sbusd runs a receiver on a serial port and exposes decoded
// channels over MQTT, websocket and Prometheus.
package sbusd

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/robotalks/sbus.go/pkg/env"
	"github.com/robotalks/sbus.go/pkg/framework"
	"github.com/robotalks/sbus.go/pkg/metrics"
	"github.com/robotalks/sbus.go/pkg/sbus"
	"github.com/robotalks/sbus.go/pkg/serial"
	"github.com/robotalks/sbus.go/pkg/telemetry/mqtt"
	"github.com/robotalks/sbus.go/pkg/telemetry/websocket"
)

// PortOpener opens the byte stream of a receiver.
type PortOpener func(path string, opts serial.PortOptions) (io.ReadCloser, error)

// OpenSerialPort is the default PortOpener.
func OpenSerialPort(path string, opts serial.PortOptions) (io.ReadCloser, error) {
	return serial.Open(path, opts)
}

// Daemon wires a Receiver to its outputs.
type Daemon struct {
	Config   Config
	Session  string
	OpenPort PortOpener
	Receiver *sbus.Receiver

	locked     bool
	errLimiter *rate.Limiter
	suppressed int
}

// Error logs are limited to errLogBurst per errLogInterval, the rest are
// counted and reported with the next one logged.
const (
	errLogInterval = time.Second
	errLogBurst    = 5
)

// NewDaemon creates a Daemon using the config.
func (c *Config) NewDaemon() (*Daemon, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d := &Daemon{
		Config:   *c,
		Session:  uuid.New().String(),
		OpenPort: OpenSerialPort,
		Receiver: sbus.NewReceiver(nil),

		errLimiter: rate.NewLimiter(rate.Every(errLogInterval), errLogBurst),
	}
	if d.Config.ID == "" {
		d.Config.ID = env.MachineID()
	}
	d.Receiver.Timeout = c.FrameTimeout
	d.Receiver.Notifier = sbus.StateChangedFunc(d.stateChanged)
	d.Receiver.Errors = sbus.HandleErrorFunc(d.handleError)
	return d, nil
}

// Name implements Named.
func (d *Daemon) Name() string {
	return "sbusd:" + d.Config.ID
}

// Run implements Runnable.
func (d *Daemon) Run(ctx context.Context) error {
	port, err := d.OpenPort(d.Config.Port, d.Config.Serial)
	if err != nil {
		return err
	}
	d.Receiver.Reader = port
	glog.Infof("receiver %s session %s on %s", d.Config.ID, d.Session, d.Config.Port)

	runner := framework.NewRunnerWith(ctx)
	runner.Go(framework.NamedRun("receiver", framework.RunFunc(func(ctx context.Context) error {
		return framework.RunWithContextCloser(ctx, port, func() error {
			return d.Receiver.Run(ctx)
		})
	})))

	if d.Config.MQTTBrokerURL != "" {
		pub, err := mqtt.NewPublisher(d.Config.MQTTBrokerURL, d.Config.ID, d.Session, d.Receiver)
		if err != nil {
			port.Close()
			return err
		}
		pub.Port = d.Config.Port
		pub.Interval = d.Config.PublishInterval
		runner.Go(pub)
	}

	if d.Config.HTTPAddr != "" {
		srv := &http.Server{Addr: d.Config.HTTPAddr, Handler: d.Handler()}
		runner.Go(framework.NamedRun("http", framework.RunFunc(func(ctx context.Context) error {
			glog.Infof("serving HTTP on %s", srv.Addr)
			return framework.ServeHTTP(ctx, srv)
		})))
	}

	return runner.Wait()
}

// Handler serves /channels and /metrics.
func (d *Daemon) Handler() http.Handler {
	reg := metrics.NewRegistry()
	reg.MustRegister(metrics.NewCollector(d.Receiver))
	ws := &websocket.Server{
		Source:   d.Receiver,
		ID:       d.Config.ID,
		Session:  d.Session,
		Interval: d.Config.PublishInterval,
	}
	mux := http.NewServeMux()
	mux.Handle("/channels", ws.Handler())
	mux.Handle("/metrics", metrics.Handler(reg))
	return mux
}

func (d *Daemon) stateChanged(ctx context.Context, state sbus.SyncState) {
	stats := d.Receiver.Stats()
	switch {
	case state.IsLocked() && !d.locked:
		glog.Infof("locked: %d frames, %d bad, %d bytes discarded",
			stats.Frames, stats.BadFrames, stats.Discarded)
	case !state.IsLocked() && d.locked:
		glog.Warningf("signal lost: %d timeouts, %d bad frames", stats.Timeouts, stats.BadFrames)
	default:
		glog.V(2).Infof("state %s", state)
	}
	d.locked = state.IsLocked()
}

func (d *Daemon) handleError(ctx context.Context, err error) {
	if !d.errLimiter.Allow() {
		d.suppressed++
		return
	}
	if d.suppressed > 0 {
		glog.Warningf("%v (%d more suppressed)", err, d.suppressed)
		d.suppressed = 0
		return
	}
	glog.Warning(err)
}
