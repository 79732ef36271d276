package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// PooledRandSource implements the RandSource port with a pool of PRNGs,
// each seeded from crypto/rand. The pool keeps draws cheap under
// concurrent bet placement.
type PooledRandSource struct {
	pool *sync.Pool
}

// NewPooledRandSource creates a pooled crypto-seeded random source
func NewPooledRandSource() core.RandSource {
	return &PooledRandSource{
		pool: &sync.Pool{
			New: func() any {
				var seedBytes [8]byte
				if _, err := cryptorand.Read(seedBytes[:]); err != nil {
					return mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
				}
				seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
				return mathrand.New(mathrand.NewSource(seed))
			},
		},
	}
}

// Intn returns a uniform random int in [0, n)
func (s *PooledRandSource) Intn(n int) int {
	r := s.pool.Get().(*mathrand.Rand)
	v := r.Intn(n)
	s.pool.Put(r)
	return v
}
