package practice

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses the next question nearest to a target tier.
type Picker struct {
	mu   sync.Mutex
	bank Bank
	rng  *rand.Rand
	last int // index of the previous pick, -1 before the first
}

// NewPicker creates a picker over bank. A nil src uses the global source.
func NewPicker(bank Bank, src rand.Source) *Picker {
	p := &Picker{bank: bank, last: -1}
	if src != nil {
		p.rng = rand.New(src)
	}
	return p
}

// Next returns a question whose tier is closest to tier, chosen at random
// among ties. The previous pick is avoided when another candidate exists.
// ok is false for an empty bank.
func (p *Picker) Next(tier int) (q Question, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.bank) == 0 {
		return Question{}, false
	}

	best := -1
	var candidates []int
	for i, q := range p.bank {
		d := abs(q.Tier - tier)
		switch {
		case best < 0 || d < best:
			best = d
			candidates = append(candidates[:0], i)
		case d == best:
			candidates = append(candidates, i)
		}
	}
	if len(candidates) > 1 {
		for j, i := range candidates {
			if i == p.last {
				candidates = append(candidates[:j], candidates[j+1:]...)
				break
			}
		}
	}

	i := candidates[p.intN(len(candidates))]
	p.last = i
	return p.bank[i], true
}

func (p *Picker) intN(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	return p.rng.IntN(n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
