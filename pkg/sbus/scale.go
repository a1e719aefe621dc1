package sbus

// Scaling range.
const (
	RawMax    uint16 = 2047
	ScaledMin uint16 = 1000
	ScaledMax uint16 = 2000
)

// Scale maps a raw magnitude onto [ScaledMin, ScaledMax].
// Magnitudes above RawMax are clamped.
func Scale(raw uint16) uint16 {
	v := uint32(ScaledMin) + uint32(raw)*1000/uint32(RawMax)
	if v > uint32(ScaledMax) {
		return ScaledMax
	}
	return uint16(v)
}

// ScaleAll scales every channel.
func ScaleAll(raw [NumChannels]uint16) (out [NumChannels]uint16) {
	for n, v := range raw {
		out[n] = Scale(v)
	}
	return
}
