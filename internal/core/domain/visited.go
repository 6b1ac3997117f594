package domain

import "github.com/bits-and-blooms/bloom/v3"

const (
	minVisitedCapacity   = 100000
	visitedFalsePositive = 0.001
)

// VisitedSet is the set of detail-record URLs already processed. It only grows.
//
// A bloom filter answers most negative lookups before the exact map is consulted;
// the map is authoritative. The set is owned by a single run and is not safe for
// concurrent use.
type VisitedSet struct {
	filter *bloom.BloomFilter
	urls   map[string]struct{}
	order  []string
}

// NewVisitedSet returns a set seeded with urls. The filter is sized for twice
// the seed, never below minVisitedCapacity.
func NewVisitedSet(urls ...string) *VisitedSet {
	s := &VisitedSet{
		filter: bloom.NewWithEstimates(visitedCapacity(len(urls)), visitedFalsePositive),
		urls:   make(map[string]struct{}, len(urls)),
	}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

func visitedCapacity(seed int) uint {
	return uint(max(2*seed, minVisitedCapacity))
}

// Has reports whether url was already visited.
func (s *VisitedSet) Has(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Add marks url visited and reports whether it was new.
func (s *VisitedSet) Add(url string) bool {
	if url == "" || s.Has(url) {
		return false
	}
	s.filter.AddString(url)
	s.urls[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Len returns the number of visited urls.
func (s *VisitedSet) Len() int {
	return len(s.order)
}

// List returns the visited urls in insertion order.
func (s *VisitedSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
