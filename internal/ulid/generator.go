package ulid

import (
	"io"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces block and article identifiers.
type Generator func() string

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu        sync.RWMutex
	generator Generator = DefaultGenerator
)

// DefaultEntropy returns a monotonic reader shared by all generated IDs,
// so IDs created within the same millisecond still sort by creation order.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id is a canonical, upper-case ULID.
func ValidID(id string) bool {
	parsed, err := ulid.ParseStrict(id)
	return err == nil && parsed.String() == id
}

// GenerateID generates a new unique ID.
func GenerateID() string {
	mu.RLock()
	gen := generator
	mu.RUnlock()
	return gen()
}

func DefaultGenerator() string {
	ts := ulid.Timestamp(time.Now())
	return ulid.MustNew(ts, DefaultEntropy()).String()
}

func ResetGenerator() {
	setGenerator(DefaultGenerator)
}

// MockSequence makes GenerateID return prefix-1, prefix-2, ...
// It keeps IDs unique, which the document model relies on.
func MockSequence(prefix string) {
	var n atomic.Int64
	setGenerator(func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	})
}

func setGenerator(g Generator) {
	mu.Lock()
	generator = g
	mu.Unlock()
}
