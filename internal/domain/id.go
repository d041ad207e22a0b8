package domain

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// NewID returns an opaque identifier: a random base36 run followed by the
// current millisecond timestamp in base36. IDs are treated as unique without
// coordination; the collision probability is negligible at this scale.
func NewID() string {
	return strconv.FormatUint(rand.Uint64(), 36) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
