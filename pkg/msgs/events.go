package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/sbus.go/pkg/sbus"
)

// GroupSBUS is the type ID group of receiver messages.
const GroupSBUS uint32 = 0x00050000

// TypeIDs
const (
	ChannelsEventTypeID uint32 = TypeIDKindEvent | GroupSBUS | 0x0000
	StatusEventTypeID   uint32 = TypeIDKindEvent | GroupSBUS | 0x0001
)

// ChannelsEvent is a snapshot of decoded channels.
type ChannelsEvent struct {
	Id        string   `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Session   string   `protobuf:"bytes,2,opt,name=session,proto3" json:"session,omitempty"`
	Raw       []uint32 `protobuf:"varint,3,rep,packed,name=raw,proto3" json:"raw"`
	Scaled    []uint32 `protobuf:"varint,4,rep,packed,name=scaled,proto3" json:"scaled"`
	Locked    bool     `protobuf:"varint,5,opt,name=locked,proto3" json:"locked"`
	Frames    uint64   `protobuf:"varint,6,opt,name=frames,proto3" json:"frames"`
	BadFrames uint64   `protobuf:"varint,7,opt,name=bad_frames,json=badFrames,proto3" json:"bad_frames"`
	Timeouts  uint64   `protobuf:"varint,8,opt,name=timeouts,proto3" json:"timeouts"`
}

// NewChannelsEvent snapshots channels, state and counters.
func NewChannelsEvent(id, session string, ch sbus.ChannelReader, state sbus.SyncState, stats sbus.Stats) *ChannelsEvent {
	raw := ch.Values()
	scaled := sbus.ScaleAll(raw)
	ev := &ChannelsEvent{
		Id:        id,
		Session:   session,
		Raw:       make([]uint32, sbus.NumChannels),
		Scaled:    make([]uint32, sbus.NumChannels),
		Locked:    state.IsLocked(),
		Frames:    stats.Frames,
		BadFrames: stats.BadFrames,
		Timeouts:  stats.Timeouts,
	}
	for n := range raw {
		ev.Raw[n], ev.Scaled[n] = uint32(raw[n]), uint32(scaled[n])
	}
	return ev
}

// NewMessage implements SerializableMessage.
func (m *ChannelsEvent) NewMessage() SerializableMessage { return &ChannelsEvent{} }

// TypeID implements SerializableMessage.
func (m *ChannelsEvent) TypeID() uint32 { return ChannelsEventTypeID }

// ProtoMessage implements proto.Message.
func (m *ChannelsEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ChannelsEvent) Reset() { *m = ChannelsEvent{} }

// String implements proto.Message.
func (m *ChannelsEvent) String() string { return proto.CompactTextString(m) }

// StatusEvent announces a receiver going online or offline.
type StatusEvent struct {
	Id      string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Session string `protobuf:"bytes,2,opt,name=session,proto3" json:"session,omitempty"`
	Port    string `protobuf:"bytes,3,opt,name=port,proto3" json:"port,omitempty"`
	Online  bool   `protobuf:"varint,4,opt,name=online,proto3" json:"online"`
}

// NewMessage implements SerializableMessage.
func (m *StatusEvent) NewMessage() SerializableMessage { return &StatusEvent{} }

// TypeID implements SerializableMessage.
func (m *StatusEvent) TypeID() uint32 { return StatusEventTypeID }

// ProtoMessage implements proto.Message.
func (m *StatusEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusEvent) Reset() { *m = StatusEvent{} }

// String implements proto.Message.
func (m *StatusEvent) String() string { return proto.CompactTextString(m) }
