// Package wire defines the line-oriented operator protocol spoken
// over the command link.
//
// Input is a byte stream assembled into command lines. Output is a
// stream of lines: single-character markers acknowledging protocol
// events, data reports prefixed by the data marker, and free-form
// rejection text.
//
// The package is transport agnostic. Producers feed bytes through a
// ByteSource; consumers receive completed lines and split them into
// words with a Tokenizer.
package wire
