package sbus

// Frame layout.
const (
	FrameLength    = 25
	StartByte byte = 0x0F

	PayloadOffset  = 1
	PayloadLength  = 22
	ChecksumOffset = 23
	TrailerOffset  = 24
)

// Frame is one assembled wire frame.
type Frame [FrameLength]byte

// Checksum computes XOR over b.
func Checksum(b []byte) byte {
	var cs byte
	for _, v := range b {
		cs ^= v
	}
	return cs
}

// ValidateChecksum checks XOR of bytes 0..22 against byte 23.
func ValidateChecksum(f *Frame) bool {
	return Checksum(f[:ChecksumOffset]) == f[ChecksumOffset]
}

// Payload returns the payload bytes.
func (f *Frame) Payload() []byte {
	return f[PayloadOffset : PayloadOffset+PayloadLength]
}

// Trailer returns the trailer/flags byte.
func (f *Frame) Trailer() byte {
	return f[TrailerOffset]
}

// NewFrame encodes channel magnitudes into a frame with a valid checksum.
// Only the first PayloadChannels values fit the payload, the rest are ignored.
func NewFrame(channels []uint16, trailer byte) Frame {
	var f Frame
	f[0] = StartByte
	for i, v := range channels {
		if i >= PayloadChannels {
			break
		}
		f[2*i+1], f[2*i+2] = byte(v>>8), byte(v)
	}
	f[ChecksumOffset] = Checksum(f[:ChecksumOffset])
	f[TrailerOffset] = trailer
	return f
}
