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
	"github.com/mendi-finance/launch/logging"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Subscriber receives the events of the types it subscribed to, in the
// order they were sent.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks github.com/mendi-finance/launch/core/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
	SetID(id int)
	ID() int
}

// Interface is declared here to provide a drop-in replacement for broker mocks
// used throughout the engines.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks github.com/mendi-finance/launch/core/broker Interface
type Interface interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
	Subscribe(s Subscriber) int
	Unsubscribe(k int)
}

// Broker dispatches events synchronously. Every engine mutation completes
// before its events are observed, so subscribers never see a partial state.
type Broker struct {
	log *logging.Logger

	mu     sync.Mutex
	seq    uint64
	nextID int
	subs   map[int]Subscriber
	tSubs  map[events.Type]map[int]Subscriber
}

func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		subs:  map[int]Subscriber{},
		tSubs: map[events.Type]map[int]Subscriber{},
	}
}

func (b *Broker) ReloadConf(cfg Config) {
	b.log.Info("reloading configuration")
	if b.log.GetLevel() != cfg.Level.Get() {
		b.log.Info("updating log level",
			logging.String("old", b.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		b.log.SetLevel(cfg.Level.Get())
	}
}

func (b *Broker) Send(evt events.Event) {
	b.SendBatch([]events.Event{evt})
}

func (b *Broker) SendBatch(evts []events.Event) {
	if len(evts) == 0 {
		return
	}

	b.mu.Lock()
	for _, evt := range evts {
		b.seq++
		evt.SetSequenceID(b.seq)
	}
	type delivery struct {
		sub  Subscriber
		evts []events.Event
	}
	deliveries := []delivery{}
	for _, k := range b.sortedKeys() {
		sub := b.subs[k]
		batch := b.filter(k, evts)
		if len(batch) > 0 {
			deliveries = append(deliveries, delivery{sub: sub, evts: batch})
		}
	}
	b.mu.Unlock()

	// subscribers may send events themselves, push outside of the lock
	for _, d := range deliveries {
		d.sub.Push(d.evts...)
	}

	if b.log.IsDebug() {
		for _, evt := range evts {
			b.log.Debug("event sent",
				logging.String("type", evt.Type().String()),
				logging.Uint64("sequence", evt.Sequence()),
			)
		}
	}
}

func (b *Broker) filter(k int, evts []events.Event) []events.Event {
	if _, ok := b.tSubs[events.All][k]; ok {
		return evts
	}
	out := []events.Event{}
	for _, evt := range evts {
		if _, ok := b.tSubs[evt.Type()][k]; ok {
			out = append(out, evt)
		}
	}
	return out
}

func (b *Broker) sortedKeys() []int {
	keys := maps.Keys(b.subs)
	slices.Sort(keys)
	return keys
}

// Subscribe registers a subscriber and returns its ID. Subscribers with no
// types receive every event.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	k := b.nextID
	s.SetID(k)
	b.subs[k] = s

	types := s.Types()
	if len(types) == 0 {
		types = []events.Type{events.All}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]Subscriber{}
		}
		b.tSubs[t][k] = s
	}
	return k
}

func (b *Broker) SubscribeBatch(subs ...Subscriber) {
	for _, s := range subs {
		b.Subscribe(s)
	}
}

func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[k]; !ok {
		return
	}
	delete(b.subs, k)
	for _, subs := range b.tSubs {
		delete(subs, k)
	}
}
