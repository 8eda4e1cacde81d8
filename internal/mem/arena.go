package mem

// DefaultChunkSize is the 32 KB per-chunk limit from the KRY grammar
// (spec §6: "Chunk limit: 32 KB per AST allocation chunk").
const DefaultChunkSize = 32 * 1024

// DefaultAlignment is the arena's default byte alignment.
const DefaultAlignment = 8

type chunk struct {
	buf    []byte
	offset int
	owned  bool
}

// Arena is a bump allocator used for parser-owned strings and small
// byte buffers. Chunks are allocated on demand and chained; Reset keeps
// the first chunk's backing buffer and zeroes its offset.
type Arena struct {
	chunkSize int
	chunks    []*chunk
}

// NewArena creates an arena that allocates its own chunks of chunkSize
// bytes (defaults to DefaultChunkSize).
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// WrapBuffer creates an arena over a caller-provided buffer. The arena
// does not own it and cannot grow past it — allocation failure returns
// nil once the buffer is exhausted.
func WrapBuffer(buf []byte) *Arena {
	return &Arena{
		chunkSize: len(buf),
		chunks:    []*chunk{{buf: buf, owned: false}},
	}
}

// Alloc returns n bytes at the arena's default alignment, or nil if
// allocation fails (caller-wrapped buffer exhausted).
func (a *Arena) Alloc(n int) []byte {
	return a.AllocAligned(n, DefaultAlignment)
}

// AllocAligned returns n bytes aligned to align bytes, or nil on failure.
func (a *Arena) AllocAligned(n, align int) []byte {
	if n < 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	if len(a.chunks) == 0 {
		a.chunks = append(a.chunks, &chunk{buf: make([]byte, a.chunkSize), owned: true})
	}
	c := a.chunks[len(a.chunks)-1]
	aligned := alignUp(c.offset, align)
	if aligned+n > len(c.buf) {
		if !c.owned {
			return nil
		}
		size := a.chunkSize
		if n > size {
			size = n
		}
		c = &chunk{buf: make([]byte, size), owned: true}
		a.chunks = append(a.chunks, c)
		aligned = alignUp(c.offset, align)
		if aligned+n > len(c.buf) {
			return nil
		}
	}
	b := c.buf[aligned : aligned+n : aligned+n]
	c.offset = aligned + n
	return b
}

// Reset drops every chunk but the first and zeroes that chunk's offset
// and bytes, preserving its backing buffer (per spec: "preserves buffer,
// zeroes offset").
func (a *Arena) Reset() {
	if len(a.chunks) == 0 {
		return
	}
	first := a.chunks[0]
	first.offset = 0
	for i := range first.buf {
		first.buf[i] = 0
	}
	a.chunks = a.chunks[:1]
}

// Strdup copies s into the arena and returns a new string backed by
// that copy, or "" if allocation fails.
func (a *Arena) Strdup(s string) string {
	b := a.Alloc(len(s))
	if b == nil {
		return ""
	}
	copy(b, s)
	return string(b)
}

// Strndup copies up to n bytes of s into the arena.
func (a *Arena) Strndup(s string, n int) string {
	if n > len(s) {
		n = len(s)
	}
	return a.Strdup(s[:n])
}

// Used returns total bytes allocated across all chunks.
func (a *Arena) Used() int {
	total := 0
	for _, c := range a.chunks {
		total += c.offset
	}
	return total
}

// Chunks returns the number of chunks currently held.
func (a *Arena) Chunks() int { return len(a.chunks) }

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}
