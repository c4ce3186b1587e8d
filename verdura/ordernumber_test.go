package verdura

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumberFormat(t *testing.T) {
	// Arrange
	gen := NewOrderNumberGenerator(1)

	// Act / Assert: always the prefix plus six digits, never a leading zero
	for i := 0; i < 1000; i++ {
		assert.Regexp(t, `^VEG-[1-9]\d{5}$`, gen.Next())
	}
}

func TestOrderNumberDeterministicForSeed(t *testing.T) {
	// Arrange
	a := NewOrderNumberGenerator(99)
	b := NewOrderNumberGenerator(99)

	// Act / Assert
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestOrderNumberConcurrentDraws(t *testing.T) {
	// Arrange
	gen := NewOrderNumberGenerator(7)
	const workers = 8
	const draws = 100

	// Act
	var wg sync.WaitGroup
	results := make([][]string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < draws; i++ {
				results[w] = append(results[w], gen.Next())
			}
		}(w)
	}
	wg.Wait()

	// Assert
	for _, drawn := range results {
		assert.Len(t, drawn, draws)
		for _, n := range drawn {
			assert.Regexp(t, `^VEG-\d{6}$`, n)
		}
	}
}
