package intel

import "sort"

// Counter tallies string keys while remembering first-seen order. Top-N
// truncation sorts by count descending with ties broken by encounter
// order, so aggregation output is reproducible across runs given the same
// input order.
type Counter struct {
	counts map[string]int
	order  []string
}

type Entry struct {
	Key   string
	Count int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *Counter) Get(key string) int {
	return c.counts[key]
}

func (c *Counter) Len() int {
	return len(c.order)
}

// MostCommon returns entries sorted by count descending, first-seen order
// on ties. n <= 0 returns all entries.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Count: c.counts[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopMap returns the top n entries as a plain map for serialization.
// n <= 0 includes everything.
func (c *Counter) TopMap(n int) map[string]int {
	m := make(map[string]int)
	for _, e := range c.MostCommon(n) {
		m[e.Key] = e.Count
	}
	return m
}
