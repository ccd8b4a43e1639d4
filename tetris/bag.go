package tetris

import "math/rand/v2"

// Bag is the 7-bag randomizer: every shape is drawn once before any repeats.
type Bag struct {
	bag  []Shape
	rnd  *rand.Rand
	seed uint64
}

// NewBag returns an empty bag. A zero seed draws from a random source.
func NewBag(seed uint64) *Bag {
	b := &Bag{seed: seed}
	b.reset()
	return b
}

// Draw pops the next shape, refilling the bag only once it is empty.
func (b *Bag) Draw() Shape {
	if len(b.bag) == 0 {
		b.bag = shuffled(b.rnd)
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}

// Len is the number of shapes left before the next refill.
func (b *Bag) Len() int { return len(b.bag) }

// reset empties the bag and restarts its sequence from the seed, so a fixed
// seed deals the same shapes again. A zero seed picks a new random one.
func (b *Bag) reset() {
	seed := b.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	b.bag = nil
	b.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
}

func shuffled(r *rand.Rand) []Shape {
	s := make([]Shape, len(Shapes))
	copy(s, Shapes[:])
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	return s
}
