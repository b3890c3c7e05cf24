package scope

// Builder hands out scope identifiers while a parser descends through
// nested blocks. Sibling indices are counted per parent scope, so the same
// Builder must be shared by every file parsed into one compilation unit:
// top-level blocks of a second file continue the numbering of the first.
type Builder struct {
	stack    []ID
	children map[string]int
}

func NewBuilder() *Builder {
	return &Builder{
		stack:    []ID{Root()},
		children: make(map[string]int),
	}
}

// Current returns the innermost open scope.
func (b *Builder) Current() ID {
	return b.stack[len(b.stack)-1]
}

// Enter opens a new block of the given kind inside the current scope and
// returns its identifier.
func (b *Builder) Enter(kind Kind) ID {
	parent := b.Current()
	key := parent.Key()
	index := b.children[key]
	b.children[key] = index + 1
	id := parent.Child(index, kind)
	b.stack = append(b.stack, id)
	return id
}

// Leave closes the innermost block. Leaving the root is a no-op.
func (b *Builder) Leave() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// Reset drops every open block and returns to the root, keeping the
// sibling counters. Parsers call it at file boundaries.
func (b *Builder) Reset() {
	b.stack = b.stack[:1]
}
