// Package sbus decodes SBUS-style RC frames from a serial byte stream.
package sbus

// A frame is 25 bytes with no length prefix and no escaping:
//
//	0      start marker 0x0F
//	1..22  payload, channel magnitudes as big-endian 16-bit pairs
//	23     XOR of bytes 0..22
//	24     trailer/flags, unused
//
// Alignment is recovered from the start marker only. The marker may appear
// inside a payload, so a false lock is possible; the checksum is the only
// gate before channel values are trusted.
//
// The core (Assembler, ValidateChecksum, DecodeChannels, Scale, Channels) does
// no I/O and no allocation. Parser combines them into the decode pipeline and
// is the only holder of write access to its Channels. Receiver drives a Parser
// from an io.Reader and owns timing.
//
// Producer: RC receiver (serial line, inverted UART)
// Consumer: vehicle controller
