package models

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const referencePrefix = "DEM-"

// ReferenceGenerator issues DEM-<millis> reference numbers. Two calls within
// the same millisecond get consecutive values, so references never collide
// within one process.
type ReferenceGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{}
}

// Next returns the reference for a submission at now.
func (g *ReferenceGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return referencePrefix + strconv.FormatInt(ms, 10)
}

// ParseReference returns the millisecond counter of a DEM-<digits> reference.
func ParseReference(ref string) (int64, bool) {
	digits, ok := strings.CutPrefix(ref, referencePrefix)
	if !ok || digits == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || ms < 0 {
		return 0, false
	}
	return ms, true
}

// Seed makes the generator continue after an already issued reference.
func (g *ReferenceGenerator) Seed(ms int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ms > g.last {
		g.last = ms
	}
}
