package prog

import (
	"bytes"

	"github.com/coregx/coreglob/simd"
)

// DefaultMaxVisitedBits bounds the memo bit set of one branch search:
// 256KB. Searches that would need more run without memoization.
const DefaultMaxVisitedBits = 256 * 1024 * 8

// Span is the half-open range [Start, End) of subject offsets bound to a
// capture group.
type Span struct {
	Start, End int
}

// Backtracker matches subjects against a compiled program by recursive
// backtracking over index views of the program and the subject.
//
// Only '*' introduces choice. A run of '*' (with any group markers between
// them) is coalesced into one wildcard, which tries every split of the
// remaining subject, shortest first. Failed continuations are remembered
// per (instruction, subject offset) in a bit vector: whether a continuation
// succeeds never depends on capture state, so a failure can be reused
// across trials. This bounds a branch search to O(m*n) continuations.
//
// A Backtracker is immutable and safe for concurrent use; per-search
// scratch space lives in a BacktrackerState.
type Backtracker struct {
	prog           *Prog
	fold           bool
	maxVisitedBits int
}

// NewBacktracker creates a backtracker for p.
func NewBacktracker(p *Prog) *Backtracker {
	return &Backtracker{
		prog:           p,
		fold:           p.flags.Has(FoldCase),
		maxVisitedBits: DefaultMaxVisitedBits,
	}
}

// WithMaxVisitedBits returns a copy of b with a different memo size limit.
// A limit of 0 disables memoization.
func (b *Backtracker) WithMaxVisitedBits(n int) *Backtracker {
	b2 := *b
	b2.maxVisitedBits = n
	return &b2
}

// BacktrackerState holds per-search scratch space. It must not be shared
// between concurrent searches.
type BacktrackerState struct {
	visited []uint64
	stride  int
}

// NewBacktrackerState creates an empty state.
func NewBacktrackerState() *BacktrackerState {
	return &BacktrackerState{}
}

// reset prepares the memo for a branch of codeLen bytes and a subject of
// subjectLen bytes. It returns false if the memo would exceed limit.
func (st *BacktrackerState) reset(codeLen, subjectLen, limit int) bool {
	bitsNeeded := (codeLen + 1) * (subjectLen + 1)
	if bitsNeeded > limit {
		st.visited = st.visited[:0]
		st.stride = 0
		return false
	}
	words := (bitsNeeded + 63) / 64
	if cap(st.visited) >= words {
		st.visited = st.visited[:words]
		clear(st.visited)
	} else {
		st.visited = make([]uint64, words)
	}
	st.stride = subjectLen + 1
	return true
}

// Match tries each branch in order and returns the captures of the first
// branch that matches. It returns false without searching if the program
// failed to compile.
func (b *Backtracker) Match(st *BacktrackerState, subject []byte) ([]Span, bool) {
	for i := range b.prog.branches {
		if caps, ok := b.MatchBranch(st, i, subject); ok {
			return caps, true
		}
	}
	return nil, false
}

// MatchBranch matches branch i of the program against the whole subject.
// A nil st allocates a temporary state.
func (b *Backtracker) MatchBranch(st *BacktrackerState, i int, subject []byte) ([]Span, bool) {
	if !b.prog.valid {
		return nil, false
	}
	if st == nil {
		st = NewBacktrackerState()
	}
	code := b.prog.branches[i]
	s := search{
		code:    code,
		subject: subject,
		fold:    b.fold,
	}
	if st.reset(len(code), len(subject), b.maxVisitedBits) {
		s.visited = st.visited
		s.stride = st.stride
	}

	t, ok := s.run(0, 0, thread{origin: -1})
	if !ok {
		return nil, false
	}
	return t.caps, true
}

// thread is the capture state of one path through the search. It is passed
// by value, so an abandoned trial cannot leak captures: spans appended by
// a failed trial land beyond the caller's length and are overwritten by
// the next one.
type thread struct {
	origin int // subject offset of the open group, -1 if none
	caps   []Span
}

// mark applies a group marker at subject offset pos. A group end with no
// open group captures from the start of the branch, which is what a group
// cut in two by | looks like from its right half.
func (t thread) mark(op Op, pos int) thread {
	switch op {
	case OpStart:
		t.origin = pos
	case OpEnd:
		t.caps = append(t.caps, Span{Start: max(t.origin, 0), End: pos})
		t.origin = -1
	}
	return t
}

// markAll applies every group marker in code at pos, ignoring wildcards.
func (t thread) markAll(code []byte, pos int) thread {
	for _, op := range code {
		if op == OpStart || op == OpEnd {
			t = t.mark(op, pos)
		}
	}
	return t
}

// search is a single branch search.
type search struct {
	code    []byte
	subject []byte
	fold    bool
	visited []uint64 // nil when the memo is disabled
	stride  int
}

// run walks the branch from instruction pc and subject offset j.
func (s *search) run(pc, j int, t thread) (thread, bool) {
	code, subject := s.code, s.subject
	for pc < len(code) {
		switch op := code[pc]; op {
		case OpAny:
			return s.star(pc, j, t)

		case OpSingle:
			if j >= len(subject) {
				return t, false
			}
			pc++
			j++

		case OpOneOf, OpNoneOf:
			if j >= len(subject) {
				return t, false
			}
			n := int(code[pc+1])
			if s.inClass(code[pc+2:pc+2+n], subject[j]) != (op == OpOneOf) {
				return t, false
			}
			pc += 2 + n
			j++

		case OpStart, OpEnd:
			t = t.mark(op, j)
			pc++

		case OpOr:
			// Branches never contain OpOr.
			return t, false

		case OpByte:
			if j >= len(subject) || !s.equal(subject[j], code[pc+1]) {
				return t, false
			}
			pc += 2
			j++

		default:
			if j >= len(subject) || !s.equal(subject[j], op) {
				return t, false
			}
			pc++
			j++
		}
	}

	if j != len(subject) {
		return t, false
	}
	if t.origin >= 0 {
		t = t.mark(OpEnd, j)
	}
	return t, true
}

// star handles a wildcard at pc. The run of wildcards and group markers
// starting at pc is consumed as a single wildcard. Markers before the last
// '*' of the run apply at j; markers after it apply where the wildcard's
// span ends.
func (s *search) star(pc, j int, t thread) (thread, bool) {
	code := s.code
	last, next := pc, pc+1
scan:
	for ; next < len(code); next++ {
		switch code[next] {
		case OpAny:
			last = next
		case OpStart, OpEnd:
		default:
			break scan
		}
	}
	if last > pc {
		t = t.markAll(code[pc+1:last], j)
	}
	trailing := code[last+1 : next]

	n := len(s.subject)
	if next == len(code) {
		return s.run(next, n, t.markAll(trailing, n))
	}

	for k := j; k <= n; k++ {
		if k = s.candidate(next, k); k < 0 {
			break
		}
		if !s.visit(next, k) {
			continue
		}
		if r, ok := s.run(next, k, t.markAll(trailing, k)); ok {
			return r, true
		}
	}
	return t, false
}

// candidate returns the first offset at or after k where the instruction
// at pc can match, or -1 if there is none. Only literal instructions narrow
// the search.
func (s *search) candidate(pc, k int) int {
	var lit byte
	switch op := s.code[pc]; {
	case op == OpByte:
		lit = s.code[pc+1]
	case isOpcode(op):
		return k
	default:
		lit = op
	}

	rest := s.subject[k:]
	var i int
	if lower := fold(lit); s.fold && lower >= 'a' && lower <= 'z' {
		i = simd.Memchr2(rest, lower, lower-'a'+'A')
	} else {
		i = simd.Memchr(rest, lit)
	}
	if i < 0 {
		return -1
	}
	return k + i
}

// visit reports whether (pc, j) has not been tried yet and marks it tried.
func (s *search) visit(pc, j int) bool {
	if s.visited == nil {
		return true
	}
	idx := pc*s.stride + j
	word, bit := idx/64, uint64(1)<<(idx%64)
	if s.visited[word]&bit != 0 {
		return false
	}
	s.visited[word] |= bit
	return true
}

func (s *search) equal(c1, c2 byte) bool {
	if s.fold {
		return fold(c1) == fold(c2)
	}
	return c1 == c2
}

func (s *search) inClass(members []byte, c byte) bool {
	if !s.fold {
		return bytes.IndexByte(members, c) >= 0
	}
	for _, m := range members {
		if fold(m) == fold(c) {
			return true
		}
	}
	return false
}
