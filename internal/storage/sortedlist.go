package storage

// Entry is one (score, member) pair as returned to a caller.
type Entry struct {
	Score  *Token
	Member *Token
}

// SortedList is the container a key in the outer key-value store binds
// to: a thin wrapper around the skip list exposing exactly the
// operations spec.md §4.10's command adapters need. There is no
// secondary hash index — every lookup goes through the skip list
// itself, per spec.md §9 ("a straightforward reimplementation
// allocates the slots as a separately owned array... no trailing-array
// trick is required" — likewise no auxiliary dict is required here).
type SortedList struct {
	sl *skipList
}

// NewSortedList creates an empty container.
func NewSortedList() *SortedList {
	return &SortedList{sl: newSkipList()}
}

// Len returns the number of live entries (spec.md §4.10 SLCARD).
func (s *SortedList) Len() int {
	return s.sl.length
}

// Insert adds (score, member) unconditionally — it does not
// deduplicate (spec.md §4.3 Note).
func (s *SortedList) Insert(score, member *Token) {
	s.sl.insert(score, member)
}

// DeleteExact removes the entry with exactly this (score, member),
// returning whether one existed (spec.md §4.4).
func (s *SortedList) DeleteExact(score, member *Token) bool {
	return s.sl.deleteExact(score, member)
}

// DeleteAllWithScore removes every entry with this score, returning
// the count removed (spec.md §4.5).
func (s *SortedList) DeleteAllWithScore(score *Token) int {
	return s.sl.deleteAllWithScore(score)
}

// All returns every (score, member) pair via a layer-0 traversal, in
// order (spec.md §4.10 SLALL).
func (s *SortedList) All() []Entry {
	entries := make([]Entry, 0, s.sl.length)
	for n := s.sl.header.forward[0]; n != nil; n = n.forward[0] {
		entries = append(entries, Entry{Score: n.score, Member: n.member})
	}
	return entries
}

// SearchScore returns every entry whose score equals the input, in
// member order, via smallest-equal followed by a forward walk while
// score still matches (spec.md §4.6, §4.10 SLSEARCH).
func (s *SortedList) SearchScore(score *Token) []Entry {
	n := s.sl.smallestEqual(score)
	var entries []Entry
	for n != nil && Compare(n.score, score) == 0 {
		entries = append(entries, Entry{Score: n.score, Member: n.member})
		n = n.forward[0]
	}
	return entries
}

// Range returns every entry within r (inclusive/exclusive per r's
// bounds), walking from range-low-end to range-high-end inclusive
// (spec.md §4.10 SLRANGE). Detects an empty interval collapsed by
// exclusive bounds (spec.md §9 Design Note) and short-circuits.
func (s *SortedList) Range(r *RangeSpec) []Entry {
	low := s.sl.rangeLowEnd(r)
	if low == nil {
		return nil
	}
	high := s.sl.rangeHighEnd(r)
	if high == nil {
		return nil
	}
	if less(high.score, high.member, low.score, low.member) {
		return nil
	}

	var entries []Entry
	for n := low; n != nil; n = n.forward[0] {
		entries = append(entries, Entry{Score: n.score, Member: n.member})
		if n == high {
			break
		}
	}
	return entries
}
