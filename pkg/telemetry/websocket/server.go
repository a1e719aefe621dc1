// Package websocket streams decoded channels to websocket clients as JSON.
package websocket

import (
	"net/http"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/sbus.go/pkg/msgs"
	"github.com/robotalks/sbus.go/pkg/telemetry"
)

// DefaultInterval is the default interval between snapshots.
const DefaultInterval = 50 * time.Millisecond

// Server sends a ChannelsEvent to every connected client each interval.
type Server struct {
	Source   telemetry.Source
	ID       string
	Session  string
	Interval time.Duration
}

// Handler returns the websocket handler.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.serve)
}

func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()
	remote := conn.Request().RemoteAddr
	glog.V(2).Infof("websocket %s connected", remote)
	interval := s.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	ctx := conn.Request().Context()
	for {
		ev := msgs.NewChannelsEvent(s.ID, s.Session, s.Source.Channels(), s.Source.State(), s.Source.Stats())
		if err := websocket.JSON.Send(conn, ev); err != nil {
			glog.V(2).Infof("websocket %s closed: %v", remote, err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
