package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a new, unused Spot id.
type IDGenerator func() string

func UUIDs() IDGenerator {
	return uuid.NewString
}

// TimestampIDs produces millisecond Unix timestamps, the format of ids
// written by earlier versions. Ids handed out by one generator are strictly
// increasing, so two creations within the same millisecond still differ.
func TimestampIDs(now func() time.Time) IDGenerator {
	var (
		mu   sync.Mutex
		last int64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		ms := now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		last = ms
		return strconv.FormatInt(ms, 10)
	}
}

func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", "uuid":
		return UUIDs(), nil
	case "timestamp":
		return TimestampIDs(time.Now), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
