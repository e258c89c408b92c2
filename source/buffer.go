// Package source owns program text and hands out positions and fragments
// into it for diagnostics. A Buffer is immutable once constructed.
package source

import "strings"

// Buffer is an immutable owned copy of program text, indexed by line so
// Position and Fragment can address characters by (line, column).
type Buffer struct {
	text       string
	lineStarts []int // lineStarts[i] is the offset of the first byte of line i
}

// New constructs a Buffer from text. A non-empty text that does not already
// end in a newline is logically terminated with one.
func New(text string) *Buffer {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	b := &Buffer{text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// Text returns the full underlying source text.
func (b *Buffer) Text() string { return b.text }

// NumberOfLines returns the number of complete, newline-terminated lines.
func (b *Buffer) NumberOfLines() int { return len(b.lineStarts) - 1 }

// LineLength returns the number of characters on line, including its
// terminating newline, so the newline itself is addressable at column
// LineLength-1.
func (b *Buffer) LineLength(line int) int {
	return b.lineStarts[line+1] - b.lineStarts[line]
}

// lineText returns the full text of line, including its terminating newline.
func (b *Buffer) lineText(line int) string {
	return b.text[b.lineStarts[line]:b.lineStarts[line+1]]
}

func (b *Buffer) offset(p Position) int {
	return b.lineStarts[p.line] + p.column
}

// Begin returns the Position of the first character in the buffer.
func (b *Buffer) Begin() Position {
	return Position{buf: b, line: 0, column: 0}
}

// End returns the one-past-the-end Position: (number_of_lines, 0).
func (b *Buffer) End() Position {
	return Position{buf: b, line: b.NumberOfLines(), column: 0}
}

// At returns the Position for (line, column), without bounds checking
// beyond what the buffer's line table describes.
func (b *Buffer) At(line, column int) Position {
	return Position{buf: b, line: line, column: column}
}
