package typeguard

// ComparableSet is an insertion-ordered set of descriptors. Two sets are
// equal when they hold the same members, regardless of order.
type ComparableSet struct {
	index map[Descriptor]struct{}
	items []Descriptor
}

// NewComparableSet builds a set from items, dropping duplicates.
func NewComparableSet(items ...Descriptor) *ComparableSet {
	s := &ComparableSet{index: make(map[Descriptor]struct{}, len(items))}
	for _, d := range items {
		s.Add(d)
	}
	return s
}

// Add inserts d and reports whether it was absent.
func (s *ComparableSet) Add(d Descriptor) bool {
	if _, ok := s.index[d]; ok {
		return false
	}
	s.index[d] = struct{}{}
	s.items = append(s.items, d)
	return true
}

func (s *ComparableSet) Has(d Descriptor) bool {
	_, ok := s.index[d]
	return ok
}

func (s *ComparableSet) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s *ComparableSet) Items() []Descriptor {
	out := make([]Descriptor, len(s.items))
	copy(out, s.items)
	return out
}

// Equal reports whether both sets hold the same members.
func (s *ComparableSet) Equal(o *ComparableSet) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || len(s.items) != len(o.items) {
		return false
	}
	for _, d := range s.items {
		if !o.Has(d) {
			return false
		}
	}
	return true
}
