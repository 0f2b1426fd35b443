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

// Package blocktime provides the block timestamp used by every time gated
// operation. Block timestamps have a one second resolution.
package blocktime

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type Svc struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Svc {
	return &Svc{clock: clock}
}

func NewReal() *Svc {
	return New(clockwork.NewRealClock())
}

// GetTimeNow returns the current block timestamp, truncated to the second.
func (s *Svc) GetTimeNow() time.Time {
	return s.clock.Now().Truncate(time.Second)
}

// Unix returns the current block timestamp in seconds since epoch.
func (s *Svc) Unix() int64 {
	return s.clock.Now().Unix()
}
