package todo

import (
	"strconv"

	"github.com/google/uuid"
)

// NewID returns a time-ordered, collision-resistant id (UUIDv7).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// uniqueID draws from gen until it gets an id not in taken. A generator that
// keeps repeating itself gets a numeric suffix instead of looping forever.
func uniqueID(gen func() string, taken func(string) bool) string {
	id := gen()
	for i := 0; i < 3 && taken(id); i++ {
		id = gen()
	}
	if !taken(id) {
		return id
	}
	for n := 2; ; n++ {
		cand := id + "-" + strconv.Itoa(n)
		if !taken(cand) {
			return cand
		}
	}
}
