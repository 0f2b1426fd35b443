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

package distributor

import (
	"context"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks github.com/mendi-finance/launch/core/distributor Broker,Asset,Claimable

type Broker interface {
	Send(events.Event)
}

// Asset is the token being distributed.
type Asset interface {
	Address() types.Address
	BalanceOf(account types.Address) *num.Uint
	Transfer(ctx context.Context, from, to types.Address, amount *num.Uint) error
}

// Claimable is the upstream the distributor pulls from. Claim transfers
// everything newly available to the distributor and returns the amount.
type Claimable interface {
	Address() types.Address
	Claim(ctx context.Context) (*num.Uint, error)
}
