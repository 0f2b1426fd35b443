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

package broker

import (
	"sync"

	"github.com/mendi-finance/launch/core/events"
)

// Collector is a subscriber keeping every event it receives. It is used by
// the deployment driver to report what happened, and by tests.
type Collector struct {
	mu    sync.Mutex
	id    int
	types []events.Type
	evts  []events.Event
}

func NewCollector(types ...events.Type) *Collector {
	return &Collector{types: types}
}

func (c *Collector) Push(evts ...events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evts = append(c.evts, evts...)
}

func (c *Collector) Types() []events.Type {
	return c.types
}

func (c *Collector) SetID(id int) {
	c.id = id
}

func (c *Collector) ID() int {
	return c.id
}

// Events returns a copy of the received events.
func (c *Collector) Events() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Event, len(c.evts))
	copy(out, c.evts)
	return out
}

// OfType returns the received events of the given type.
func (c *Collector) OfType(t events.Type) []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []events.Event{}
	for _, e := range c.evts {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evts = nil
}
