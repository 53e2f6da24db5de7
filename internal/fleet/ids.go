package fleet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrIDExhausted is returned when the ID generator keeps producing IDs that
// are already taken.
var ErrIDExhausted = errors.New("could not generate a unique id")

// maxIDAttempts bounds retries on ID collisions.
const maxIDAttempts = 8

// Clock abstracts the current time so stores can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces entity identifiers.
type IDGenerator interface {
	New() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type uuidGenerator struct{}

func (uuidGenerator) New() string { return uuid.New().String() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// UUIDs generates random version 4 UUIDs.
var UUIDs IDGenerator = uuidGenerator{}

// newID draws from gen until it yields an ID that taken rejects.
func newID(gen IDGenerator, taken func(string) bool) (string, error) {
	for range maxIDAttempts {
		id := gen.New()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
