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

package broker_test

import (
	"context"
	"testing"

	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/broker/mocks"
	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokerTst struct {
	*broker.Broker
	ctrl *gomock.Controller
}

func getBroker(t *testing.T) *brokerTst {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &brokerTst{
		Broker: broker.New(logging.NewTestLogger(), broker.NewDefaultConfig()),
		ctrl:   ctrl,
	}
}

func TestBroker(t *testing.T) {
	t.Run("Events get sequence IDs in sending order", testSequenceIDs)
	t.Run("Subscriber only receives its types", testTypedSubscriber)
	t.Run("Subscriber without types receives everything", testAllSubscriber)
	t.Run("Unsubscribed subscriber receives nothing", testUnsubscribe)
	t.Run("Subscriber can send while being pushed", testReentrantSend)
}

func transferEvt() events.Event {
	return events.NewTransfer(context.Background(), types.HexToAddress("0x01"), types.HexToAddress("0x02"), types.HexToAddress("0x03"), num.NewUint(10))
}

func depositEvt() events.Event {
	return events.NewDeposit(context.Background(), types.HexToAddress("0x01"), types.HexToAddress("0x02"), num.NewUint(10), true)
}

func testSequenceIDs(t *testing.T) {
	b := getBroker(t)
	c := broker.NewCollector()
	b.Subscribe(c)

	b.SendBatch([]events.Event{transferEvt(), depositEvt()})
	b.Send(transferEvt())

	evts := c.Events()
	require.Len(t, evts, 3)
	for i, e := range evts {
		assert.Equal(t, uint64(i+1), e.Sequence())
	}
}

func testTypedSubscriber(t *testing.T) {
	b := getBroker(t)
	sub := mocks.NewMockSubscriber(b.ctrl)
	sub.EXPECT().Types().Times(1).Return([]events.Type{events.DepositEvent})
	sub.EXPECT().SetID(1).Times(1)
	sub.EXPECT().Push(gomock.Any()).Times(1).Do(func(evts ...events.Event) {
		require.Len(t, evts, 1)
		assert.Equal(t, events.DepositEvent, evts[0].Type())
	})
	assert.Equal(t, 1, b.Subscribe(sub))

	b.SendBatch([]events.Event{transferEvt(), depositEvt(), transferEvt()})
}

func testAllSubscriber(t *testing.T) {
	b := getBroker(t)
	c := broker.NewCollector()
	b.Subscribe(c)

	b.Send(transferEvt())
	b.Send(depositEvt())

	assert.Len(t, c.Events(), 2)
	assert.Len(t, c.OfType(events.DepositEvent), 1)
}

func testUnsubscribe(t *testing.T) {
	b := getBroker(t)
	c := broker.NewCollector(events.TransferEvent)
	id := b.Subscribe(c)
	assert.Equal(t, id, c.ID())

	b.Send(transferEvt())
	b.Unsubscribe(id)
	b.Send(transferEvt())
	// unknown IDs are ignored
	b.Unsubscribe(id + 42)

	assert.Len(t, c.Events(), 1)
}

type forwarder struct {
	*broker.Collector
	b *broker.Broker
}

func (f *forwarder) Push(evts ...events.Event) {
	f.Collector.Push(evts...)
	for _, e := range evts {
		if e.Type() == events.TransferEvent {
			f.b.Send(depositEvt())
		}
	}
}

func testReentrantSend(t *testing.T) {
	b := getBroker(t)
	f := &forwarder{Collector: broker.NewCollector(), b: b.Broker}
	b.Subscribe(f)

	b.Send(transferEvt())

	evts := f.Events()
	require.Len(t, evts, 2)
	assert.Equal(t, events.TransferEvent, evts[0].Type())
	assert.Equal(t, events.DepositEvent, evts[1].Type())
	assert.Equal(t, uint64(2), evts[1].Sequence())
}
