package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampIDsAreStrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	next := TimestampIDs(func() time.Time { return fixed })

	assert.Equal(t, "1700000000000", next())
	assert.Equal(t, "1700000000001", next())
	assert.Equal(t, "1700000000002", next())
}

func TestUUIDsAreUnique(t *testing.T) {
	next := UUIDs()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := next()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestNewIDGenerator(t *testing.T) {
	for _, scheme := range []string{"", "uuid", "timestamp"} {
		gen, err := NewIDGenerator(scheme)
		require.NoError(t, err, scheme)
		assert.NotEmpty(t, gen())
	}

	_, err := NewIDGenerator("sequential")
	assert.Error(t, err)
}
