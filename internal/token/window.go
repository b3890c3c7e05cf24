package token

// Window delimits a contiguous range of source used to underline a
// diagnostic. End is exclusive.
type Window struct {
	Start Position
	End   Position
}

// WindowOf returns the window covering a single token.
func WindowOf(t Token) Window {
	return Window{Start: t.Position, End: t.End()}
}

// Span returns the smallest window covering both a and b.
func Span(a, b Window) Window {
	if !a.Start.IsValid() {
		return b
	}
	if !b.Start.IsValid() {
		return a
	}
	w := a
	if b.Start.Before(w.Start) {
		w.Start = b.Start
	}
	if w.End.Before(b.End) {
		w.End = b.End
	}
	return w
}

// Contains reports whether p lies inside the window.
func (w Window) Contains(p Position) bool {
	return !p.Before(w.Start) && p.Before(w.End)
}

func (w Window) String() string {
	return w.Start.String()
}
