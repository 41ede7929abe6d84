package domain

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var lastMillis atomic.Int64

// nextMillis returns the current Unix time in milliseconds, bumped forward when
// two ids are requested within the same millisecond.
func nextMillis() int64 {
	for {
		now := time.Now().UnixMilli()
		last := lastMillis.Load()
		if now <= last {
			now = last + 1
		}
		if lastMillis.CompareAndSwap(last, now) {
			return now
		}
	}
}

// NewID returns a timestamp-derived identifier as used for products, posts,
// partners and testimonials.
func NewID() string {
	return strconv.FormatInt(nextMillis(), 10)
}

// NewTeamMemberID returns "team-<millis>".
func NewTeamMemberID() string {
	return "team-" + NewID()
}

// NewIndustryID returns a random synthetic industry id.
func NewIndustryID() string {
	return uuid.NewString()
}
