package planner

// combinationIndexer maps an index to a tuple of choices, one per list. The first position varies fastest.
type combinationIndexer struct {
	radices []int // Number of options of each position
}

func newCombinationIndexer(radices []int) combinationIndexer {
	return combinationIndexer{radices: radices}
}

// Writes into choices the tuple identified by the index
func (indexer combinationIndexer) Attributes(index int, choices []int) {
	for position, radix := range indexer.radices {
		choices[position] = index % radix
		index = index / radix
	}
}

// Returns the number of tuples, saturated at limit+1 so callers can tell that the limit is exceeded
// without overflowing
func (indexer combinationIndexer) Size(limit int) int {
	size := 1
	for _, radix := range indexer.radices {
		if radix == 0 {
			return 0
		}
		if size > (limit+1)/radix {
			return limit + 1
		}
		size *= radix
	}
	return min(size, limit+1)
}

// enumerate visits the tuples of choices in index order, at most limit of them. It stops early when
// visit returns false. Returns how many tuples were visited and whether tuples were left unvisited
// because of the limit.
func enumerate(radices []int, limit int, visit func(choices []int) bool) (processed int, truncated bool) {
	indexer := newCombinationIndexer(radices)
	size := indexer.Size(limit)
	choices := make([]int, len(radices))

	for index := range min(size, limit) {
		indexer.Attributes(index, choices)
		processed++
		if !visit(choices) {
			return processed, false
		}
	}
	return processed, size > limit
}
