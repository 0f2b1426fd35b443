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

package metrics

import (
	"sync/atomic"

	"github.com/mendi-finance/launch/core/events"
)

// EventSubscriber feeds the launch instruments from the broker. It receives
// every event type.
type EventSubscriber struct {
	id              atomic.Int64
	depositDecimals uint8
}

func NewEventSubscriber(depositDecimals uint8) *EventSubscriber {
	return &EventSubscriber{
		depositDecimals: depositDecimals,
	}
}

func (s *EventSubscriber) Push(evts ...events.Event) {
	for _, e := range evts {
		EventCounterInc(e.Type().String())

		switch et := e.(type) {
		case *events.Deposit:
			DepositAdd(et.Coordinator.Hex(), et.Bonus, et.Amount, s.depositDecimals)
		case *events.Finalize:
			FinalizeSet(et.Coordinator.Hex(), et.Amount)
		case *events.AssetDelivery:
			DeliveredAdd(et.Coordinator.Hex(), et.Amount)
		case *events.DistributorClaim:
			ClaimAdd(et.Distributor.Hex(), et.Amount)
		case *events.VestingRelease:
			VestingReleaseAdd(et.Vester.Hex(), et.Amount)
		case *events.LoyaltyMint:
			LoyaltyMintInc(et.Token.Hex())
		}
	}
}

func (s *EventSubscriber) Types() []events.Type {
	return nil
}

func (s *EventSubscriber) SetID(id int) {
	s.id.Store(int64(id))
}

func (s *EventSubscriber) ID() int {
	return int(s.id.Load())
}
