package sessions

import "math/rand"

// SelectionPolicy chooses the question-id snapshot for a new session.
type SelectionPolicy interface {
	Select() []string
}

// Fixed uses the given list as-is: test-derived sessions walk the test's
// questions in order.
type Fixed struct {
	IDs []string
}

func (p Fixed) Select() []string {
	return p.IDs
}

// RandomSubset shuffles a copy of the pool and takes at most Max entries:
// topic-derived ad hoc sessions draw a bounded random subset of the topic's
// question bank.
type RandomSubset struct {
	Pool []string
	Max  int
}

func (p RandomSubset) Select() []string {
	picked := make([]string, len(p.Pool))
	copy(picked, p.Pool)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > p.Max {
		picked = picked[:p.Max]
	}
	return picked
}
