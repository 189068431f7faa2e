// Package trackid generates human-readable tracking ids. Ids are unique
// only by virtue of their time or random suffix; nothing checks for
// collisions.
package trackid

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/safarshare/safar/internal/common"
)

// Scheme selects how the suffix after the prefix is built.
type Scheme int

// Suffix schemes.
const (
	// Random5 is a random number in [10000, 99999].
	Random5 Scheme = iota
	// EpochTail8 is the last eight digits of the epoch in milliseconds.
	EpochTail8
	// Base36 is nine random upper-case base-36 characters.
	Base36
	// EpochMillis is the full epoch in milliseconds.
	EpochMillis
)

func (s Scheme) String() string {
	switch s {
	case Random5:
		return "random5"
	case EpochTail8:
		return "epoch-tail8"
	case Base36:
		return "base36"
	case EpochMillis:
		return "epoch-millis"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator builds tracking ids from a clock and a random source.
type Generator struct {
	clock common.Clock
	rng   *rand.Rand
	mu    sync.Mutex
}

// New creates a generator. A nil rng uses a randomly seeded source.
func New(clock common.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = common.SystemClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns prefix followed by a suffix built with scheme.
func (g *Generator) Generate(prefix string, scheme Scheme) (string, error) {
	var suffix string
	switch scheme {
	case Random5:
		g.mu.Lock()
		suffix = strconv.Itoa(10000 + g.rng.IntN(90000))
		g.mu.Unlock()
	case EpochTail8:
		suffix = fmt.Sprintf("%08d", g.clock.Now().UnixMilli()%100_000_000)
	case Base36:
		var b strings.Builder
		g.mu.Lock()
		for range 9 {
			b.WriteByte(base36Alphabet[g.rng.IntN(len(base36Alphabet))])
		}
		g.mu.Unlock()
		suffix = b.String()
	case EpochMillis:
		suffix = strconv.FormatInt(g.clock.Now().UnixMilli(), 10)
	default:
		return "", fmt.Errorf("unknown tracking id scheme %s", scheme)
	}
	return prefix + suffix, nil
}
