package wire

// Tokenizer splits a command line into words. Words are separated by
// runs of spaces; a newline ends the scan. Other whitespace is not
// special and lands inside words, matching the forgiving grammar of
// the serial console.
type Tokenizer struct {
	line string
	pos  int
}

// Reset points the tokenizer at a new line and rewinds it.
func (t *Tokenizer) Reset(line string) {
	t.line = line
	t.pos = 0
}

// Next returns the next word of the line. ok is false once the line
// is exhausted.
func (t *Tokenizer) Next() (word string, ok bool) {
	for t.pos < len(t.line) && t.line[t.pos] == ' ' {
		t.pos++
	}
	if t.pos >= len(t.line) || t.line[t.pos] == '\n' {
		return "", false
	}
	start := t.pos
	for t.pos < len(t.line) && t.line[t.pos] != ' ' && t.line[t.pos] != '\n' {
		t.pos++
	}
	return t.line[start:t.pos], true
}
