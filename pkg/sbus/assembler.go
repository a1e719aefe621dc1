package sbus

// Assembler accumulates bytes into aligned frames.
// It is a fixed ring buffer of FrameLength bytes and never allocates.
type Assembler struct {
	buf  [FrameLength]byte
	head int
	size int
}

// ProcessByte consumes one byte and reports whether a full frame is buffered.
//
// On an empty buffer, anything but StartByte is dropped. When the buffer is
// full the oldest byte is evicted so the window keeps sliding forward.
func (a *Assembler) ProcessByte(b byte) bool {
	if a.size == 0 && b != StartByte {
		return false
	}
	if a.size == FrameLength {
		a.head = (a.head + 1) % FrameLength
		a.size--
	}
	a.buf[(a.head+a.size)%FrameLength] = b
	a.size++
	return a.size >= FrameLength
}

// TakeFrame removes the buffered frame, oldest byte first.
// It returns false if the buffer doesn't hold a full frame yet.
func (a *Assembler) TakeFrame() (f Frame, ok bool) {
	if a.size < FrameLength {
		return
	}
	for n := range f {
		f[n] = a.buf[(a.head+n)%FrameLength]
	}
	a.Reset()
	return f, true
}

// Len returns the number of buffered bytes.
func (a *Assembler) Len() int {
	return a.size
}

// Reset drops all buffered bytes.
func (a *Assembler) Reset() {
	a.head, a.size = 0, 0
}
