package source

import "strings"

// Fragment is a half-open range [Begin, End) of characters in a Buffer,
// used to annotate tokens and tree nodes with the source text they came
// from.
type Fragment struct {
	Begin Position
	End   Position
}

// NewFragment builds a Fragment from begin to end. begin must not be
// after end.
func NewFragment(begin, end Position) Fragment {
	return Fragment{Begin: begin, End: end}
}

// Empty reports whether the fragment covers no characters.
func (f Fragment) Empty() bool {
	return f.Begin.Compare(f.End) == 0
}

// singleLine reports whether Begin and End fall on the same line.
func (f Fragment) singleLine() bool {
	return f.Begin.line == f.End.line
}

// Size returns the column span of a single-line fragment.
func (f Fragment) Size() int {
	return f.End.column - f.Begin.column
}

// Str returns the substring the fragment covers.
func (f Fragment) Str() string {
	buf := f.Begin.buf
	return buf.text[buf.offset(f.Begin):buf.offset(f.End)]
}

// Extend widens f to the union of f and other: the earlier begin and the
// later end.
func (f Fragment) Extend(other Fragment) Fragment {
	begin := f.Begin
	if other.Begin.Before(begin) {
		begin = other.Begin
	}
	end := f.End
	if end.Before(other.End) {
		end = other.End
	}
	return Fragment{Begin: begin, End: end}
}

// String renders the fragment per the caret pretty-printing rules: an
// empty fragment prints nothing, a single-character fragment prints as
// its Position, and a multi-character single-line fragment prints the
// begin Position followed by max(span-1, 0) '~' characters after the '^'.
func (f Fragment) String() string {
	if f.Empty() {
		return ""
	}
	if f.singleLine() && f.Size() == 1 {
		return f.Begin.String()
	}
	var sb strings.Builder
	sb.WriteString(f.Begin.String())
	if f.singleLine() {
		tilde := f.Size() - 1
		if tilde < 0 {
			tilde = 0
		}
		sb.WriteString(strings.Repeat("~", tilde))
	}
	return sb.String()
}
