package verdura

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

const orderNumberPrefix = "VEG-"

// OrderNumberGenerator yields customer-facing order numbers of the form
// "VEG-" followed by six digits drawn uniformly from [100000, 999999].
// Numbers are not guaranteed unique here; the order store enforces
// uniqueness and asks for a fresh number on conflict.
type OrderNumberGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewOrderNumberGenerator(seed uint64) *OrderNumberGenerator {
	var seedBytes [32]byte
	binary.LittleEndian.PutUint64(seedBytes[0:8], seed)
	return &OrderNumberGenerator{
		rng: rand.New(rand.NewChaCha8(seedBytes)),
	}
}

func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 100000 + g.rng.IntN(900000)
	return fmt.Sprintf("%s%d", orderNumberPrefix, n)
}
