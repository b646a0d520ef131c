package stringart

// Chord is a committed straight line from pin From to pin To, in the
// direction it was drawn.
type Chord struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Edge returns the unordered form of the chord.
func (c Chord) Edge() Edge {
	return NewEdge(c.From, c.To)
}

// Edge is an unordered pin pair. NewEdge(a, b) == NewEdge(b, a).
type Edge struct {
	A, B int
}

// NewEdge returns the edge between a and b with A <= B.
func NewEdge(a, b int) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeSet records which pin pairs are already connected. The zero value is
// ready to use.
type EdgeSet struct {
	m map[Edge]struct{}
}

// Add inserts the edge between a and b. It reports false if the edge was
// already present.
func (s *EdgeSet) Add(a, b int) bool {
	e := NewEdge(a, b)
	if _, ok := s.m[e]; ok {
		return false
	}
	if s.m == nil {
		s.m = make(map[Edge]struct{})
	}
	s.m[e] = struct{}{}
	return true
}

// Has reports whether a and b are connected, in either orientation.
func (s *EdgeSet) Has(a, b int) bool {
	_, ok := s.m[NewEdge(a, b)]
	return ok
}

// Len returns the number of distinct edges.
func (s *EdgeSet) Len() int {
	return len(s.m)
}

// ChordLog is the append-only, ordered list of committed chords.
type ChordLog struct {
	chords []Chord
}

func (l *ChordLog) append(c Chord) {
	l.chords = append(l.chords, c)
}

// Len returns the number of chords.
func (l *ChordLog) Len() int {
	return len(l.chords)
}

// At returns the i-th chord in commit order.
func (l *ChordLog) At(i int) Chord {
	return l.chords[i]
}

// Chords returns a copy of the log.
func (l *ChordLog) Chords() []Chord {
	return append([]Chord(nil), l.chords...)
}

// Sequences splits the log into continuous pin paths. A new path starts
// whenever a chord does not begin where the previous one ended, which
// happens after the walk is re-seeded. Each path lists the pins to thread
// in order.
func (l *ChordLog) Sequences() [][]int {
	return Sequences(l.chords)
}

// Sequences splits chords into continuous pin paths; see ChordLog.Sequences.
func Sequences(chords []Chord) [][]int {
	var (
		seqs [][]int
		cur  []int
	)
	for _, c := range chords {
		if len(cur) == 0 || cur[len(cur)-1] != c.From {
			if len(cur) > 0 {
				seqs = append(seqs, cur)
			}
			cur = []int{c.From}
		}
		cur = append(cur, c.To)
	}
	if len(cur) > 0 {
		seqs = append(seqs, cur)
	}
	return seqs
}
