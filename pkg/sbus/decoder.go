package sbus

// PayloadChannels is the number of channels carried by the payload.
// Channel i is read from bytes 2i+1 and 2i+2, so channels from 11 on would
// reach into the checksum, the trailer or past the frame. They decode as 0.
const PayloadChannels = PayloadLength / 2

// DecodeChannels decodes raw channel magnitudes from a frame.
// The frame is expected to have passed ValidateChecksum.
func DecodeChannels(f *Frame) (ch [NumChannels]uint16) {
	for i := range ch {
		hi, lo := 2*i+1, 2*i+2
		if lo >= PayloadOffset+PayloadLength {
			break
		}
		ch[i] = uint16(f[hi])<<8 | uint16(f[lo])
	}
	return
}

// ExtractChannels decodes a frame and replaces all values in out at once.
func ExtractChannels(f *Frame, out *Channels) {
	out.update(DecodeChannels(f))
}
