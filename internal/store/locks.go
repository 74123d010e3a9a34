package store

import (
	"fmt"
	"sync"
)

// LockPolicy selects how collection read-modify-write cycles are serialized.
type LockPolicy string

const (
	// LockNone leaves cycles unserialized: concurrent writers can lose updates.
	LockNone LockPolicy = "none"
	// LockMutex serializes every read and every cycle per collection name.
	LockMutex LockPolicy = "mutex"
)

func ParseLockPolicy(s string) (LockPolicy, error) {
	switch LockPolicy(s) {
	case LockNone, LockMutex:
		return LockPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown lock policy %q", s)
	}
}

// Locks hands out one lock per collection name, so every Collection built
// over the same name shares it.
type Locks struct {
	policy LockPolicy
	mu     sync.Mutex
	byName map[string]*sync.Mutex
}

func NewLocks(policy LockPolicy) *Locks {
	return &Locks{policy: policy, byName: make(map[string]*sync.Mutex)}
}

func (l *Locks) Policy() LockPolicy {
	return l.policy
}

func (l *Locks) For(name string) sync.Locker {
	if l == nil || l.policy != LockMutex {
		return noLock{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.byName[name]
	if !ok {
		m = &sync.Mutex{}
		l.byName[name] = m
	}
	return m
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
