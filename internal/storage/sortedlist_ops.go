package storage

// getOrCreateSortedList fetches the *SortedList bound to key, creating
// an empty one if the key is absent, and reports ErrWrongType if key
// holds a different value type. Modeled on the teacher's
// getOrCreateZSet.
func (s *Store) getOrCreateSortedList(key string) (*SortedList, error) {
	val, exists := s.Get(key)
	if !exists {
		sl := NewSortedList()
		s.data[key] = &Value{Data: sl, Type: SortedListType}
		return sl, nil
	}

	sl, ok := val.(*SortedList)
	if !ok {
		return nil, ErrWrongType
	}
	return sl, nil
}

// getExistingSortedList fetches the *SortedList bound to key without
// creating one. Returns (nil, false, nil) if the key is absent, and
// ErrWrongType if key holds a different value type.
func (s *Store) getExistingSortedList(key string) (*SortedList, bool, error) {
	val, exists := s.Get(key)
	if !exists {
		return nil, false, nil
	}
	sl, ok := val.(*SortedList)
	if !ok {
		return nil, false, ErrWrongType
	}
	return sl, true, nil
}

// SLAdd inserts the (score, member) pairs under key, following the
// command-adapter semantics of spec.md §4.10 SLADD: for each pair,
// delete-exact then insert. The multi-map invariant (spec.md §3
// invariant 7) is on the (score, member) pair, not the member alone, so
// the same member at a different score is a distinct entry — only a
// pair that already exists in exactly this (score, member) form is
// replaced rather than duplicated. pairs holds one [score, member]
// byte-slice pair per entry, in argument order.
//
// On a wrong-type key this returns immediately without touching any
// remaining pair. added counts the pairs that were net-new (no prior
// exact match removed).
func (s *Store) SLAdd(key string, pairs [][2][]byte) (int, error) {
	sl, err := s.getOrCreateSortedList(key)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, pair := range pairs {
		score := NewToken(pair[0])
		member := NewStringToken(pair[1])

		removed := sl.DeleteExact(score, member)
		sl.Insert(score, member)
		if !removed {
			added++
		}
	}
	s.NotifySorted("sladd", key)
	return added, nil
}

// SLRem removes every entry at each given score from key via
// delete-all-with-score (spec.md §4.5, §4.10 SLREM), summing the
// removed count across scores. Drops the wrapping key once the
// container is empty, firing the generic "del" notification to match
// the explicit DEL command. A missing key behaves as if the sorted
// list were empty.
func (s *Store) SLRem(key string, scores [][]byte) (int, error) {
	sl, exists, err := s.getExistingSortedList(key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	removed := 0
	for _, score := range scores {
		removed += sl.DeleteAllWithScore(NewToken(score))
	}
	if removed > 0 {
		s.NotifySorted("slrem", key)
		if sl.Len() == 0 {
			s.deleteKey(key)
			s.NotifyGeneric("del", key)
		}
	}
	return removed, nil
}

// SLAll returns every entry in key in order, per spec.md §4.10 SLALL.
func (s *Store) SLAll(key string) ([]Entry, error) {
	sl, exists, err := s.getExistingSortedList(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return sl.All(), nil
}

// SLSearch returns every entry in key whose score equals score, per
// spec.md §4.10 SLSEARCH.
func (s *Store) SLSearch(key string, score []byte) ([]Entry, error) {
	sl, exists, err := s.getExistingSortedList(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return sl.SearchScore(NewToken(score)), nil
}

// SLRange returns every entry in key within the parsed range, per
// spec.md §4.10 SLRANGE.
func (s *Store) SLRange(key string, minRaw, maxRaw []byte) ([]Entry, error) {
	sl, exists, err := s.getExistingSortedList(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	r, err := ParseRangeSpec(minRaw, maxRaw)
	if err != nil {
		return nil, err
	}
	return sl.Range(r), nil
}

// SortedListEntryCount sums the entry count across every sorted list
// key currently in the store, for the aggregate metrics gauge.
func (s *Store) SortedListEntryCount() int {
	total := 0
	for _, val := range s.data {
		if sl, ok := val.Data.(*SortedList); ok {
			total += sl.Len()
		}
	}
	return total
}

// SLCard returns the number of entries in key, per spec.md §4.10 SLCARD.
// A missing key reports 0.
func (s *Store) SLCard(key string) (int, error) {
	sl, exists, err := s.getExistingSortedList(key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return sl.Len(), nil
}
