// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package window gates actions on a half open time interval [begin, end).
package window

import (
	"errors"
	"time"
)

var (
	ErrTooSoon = errors.New("too soon")
	ErrTooLate = errors.New("too late")
)

type Window struct {
	begin    time.Time
	duration time.Duration
}

func New(begin time.Time, duration time.Duration) Window {
	return Window{begin: begin, duration: duration}
}

func (w Window) Begin() time.Time        { return w.begin }
func (w Window) End() time.Time          { return w.begin.Add(w.duration) }
func (w Window) Duration() time.Duration { return w.duration }

// Before returns true if the window is not open yet.
func (w Window) Before(now time.Time) bool {
	return now.Before(w.begin)
}

// After returns true if the window is closed.
func (w Window) After(now time.Time) bool {
	return !now.Before(w.End())
}

func (w Window) Contains(now time.Time) bool {
	return !w.Before(now) && !w.After(now)
}

// Check returns ErrTooSoon before the window and ErrTooLate once it closed.
func (w Window) Check(now time.Time) error {
	if w.Before(now) {
		return ErrTooSoon
	}
	if w.After(now) {
		return ErrTooLate
	}
	return nil
}
