// Package sh implements an interactive shell for decoding SBUS byte
// streams by hand. Commands are registered by packages under cli/cmds.
package sh
