// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of a calendar day.
const DateLayout = "2006-01-02"

// Clock supplies the current instant and the calendar day it falls on.
type Clock interface {
	Now() time.Time
	Today() string
}

// System reads the wall clock and fixes day boundaries in Location.
type System struct {
	Location *time.Location
}

// NewSystem loads the named zone ("" means UTC).
func NewSystem(zone string) (System, error) {
	if zone == "" {
		return System{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return System{}, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return System{Location: loc}, nil
}

func (s System) Now() time.Time {
	return time.Now().In(location(s.Location))
}

func (s System) Today() string {
	return DateOf(s.Now(), s.Location)
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Today() string {
	return DateOf(f.At, f.At.Location())
}

// DateOf formats the calendar day of value as seen in loc.
func DateOf(value time.Time, loc *time.Location) string {
	year, month, day := value.In(location(loc)).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location(loc)).Format(DateLayout)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
