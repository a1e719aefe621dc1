package mqtt

import (
	"context"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/sbus.go/pkg/msgs"
	"github.com/robotalks/sbus.go/pkg/sbus"
	"github.com/robotalks/sbus.go/pkg/telemetry"
)

// DefaultPublishInterval is the default interval between channel snapshots.
const DefaultPublishInterval = 50 * time.Millisecond

// ChannelsTopic is the topic channel snapshots are published to.
func ChannelsTopic(id string) string {
	return id + "/channels"
}

// StatusTopic is the retained topic for receiver status.
func StatusTopic(id string) string {
	return id + "/status"
}

// Publisher publishes channel snapshots of a receiver.
type Publisher struct {
	Queue    *Queue
	ID       string
	Session  string
	Port     string
	Source   telemetry.Source
	Interval time.Duration

	lastFrames uint64
	lastState  sbus.SyncState
	published  bool
}

// NewPublisher creates a Publisher with its own broker connection.
// An offline status is registered as will so subscribers learn about a
// receiver going away without a clean shutdown.
func NewPublisher(brokerURL, id, session string, src telemetry.Source) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	p := &Publisher{
		ID:       id,
		Session:  session,
		Source:   src,
		Interval: DefaultPublishInterval,
	}
	will, err := msgs.Encode(p.status(false))
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+StatusTopic(id), will, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("sbus:" + id)
	}
	p.Queue = NewQueue(opts, topicPrefix)
	p.Queue.OnConnect = func(*Queue) { p.publishStatus(true) }
	return p, nil
}

// Name implements Named.
func (p *Publisher) Name() string {
	return "mqtt:" + p.ID
}

// Run implements Runnable.
func (p *Publisher) Run(ctx context.Context) error {
	token := p.Queue.Connect()
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	interval := p.Interval
	if interval == 0 {
		interval = DefaultPublishInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if token := p.publishStatus(false); token != nil {
				token.WaitTimeout(time.Second)
			}
			p.Queue.Close()
			return ctx.Err()
		case <-ticker.C:
			if ev := p.nextEvent(); ev != nil {
				p.publish(ChannelsTopic(p.ID), ev, 0, false)
			}
		}
	}
}

// nextEvent returns a snapshot if a frame arrived or the state changed
// since the last one, otherwise nil.
func (p *Publisher) nextEvent() *msgs.ChannelsEvent {
	stats, state := p.Source.Stats(), p.Source.State()
	if p.published && stats.Frames == p.lastFrames && state.IsLocked() == p.lastState.IsLocked() {
		return nil
	}
	p.lastFrames, p.lastState, p.published = stats.Frames, state, true
	return msgs.NewChannelsEvent(p.ID, p.Session, p.Source.Channels(), state, stats)
}

func (p *Publisher) status(online bool) *msgs.StatusEvent {
	return &msgs.StatusEvent{Id: p.ID, Session: p.Session, Port: p.Port, Online: online}
}

func (p *Publisher) publishStatus(online bool) paho.Token {
	return p.publish(StatusTopic(p.ID), p.status(online), 1, true)
}

// publish returns nil if msg can't be encoded.
func (p *Publisher) publish(topic string, msg msgs.SerializableMessage, qos byte, retain bool) paho.Token {
	payload, err := msgs.Encode(msg)
	if err != nil {
		glog.Errorf("encode %s: %v", topic, err)
		return nil
	}
	return p.Queue.PubWith(topic, payload, qos, retain)
}
