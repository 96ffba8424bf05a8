package services

import "time"

// Clock supplies the current time so period bucketing and schedule
// validation can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func NewClock() Clock { return realClock{} }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
