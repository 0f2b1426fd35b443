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

package events

import (
	"context"

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
)

type Deposit struct {
	*Base
	Coordinator types.Address
	Account     types.Address
	Amount      *num.Uint
	Bonus       bool
}

func NewDeposit(ctx context.Context, coordinator, account types.Address, amount *num.Uint, bonus bool) *Deposit {
	return &Deposit{
		Base:        newBase(ctx, DepositEvent),
		Coordinator: coordinator,
		Account:     account,
		Amount:      amount.Clone(),
		Bonus:       bonus,
	}
}

type Finalize struct {
	*Base
	Coordinator     types.Address
	ReservesManager types.Address
	Amount          *num.Uint
}

func NewFinalize(ctx context.Context, coordinator, reservesManager types.Address, amount *num.Uint) *Finalize {
	return &Finalize{
		Base:            newBase(ctx, FinalizeEvent),
		Coordinator:     coordinator,
		ReservesManager: reservesManager,
		Amount:          amount.Clone(),
	}
}

type ReservesManager struct {
	*Base
	Coordinator     types.Address
	Previous        types.Address
	ReservesManager types.Address
}

func NewReservesManager(ctx context.Context, coordinator, previous, reservesManager types.Address) *ReservesManager {
	return &ReservesManager{
		Base:            newBase(ctx, ReservesManagerEvent),
		Coordinator:     coordinator,
		Previous:        previous,
		ReservesManager: reservesManager,
	}
}

// AssetDelivery is sent when the coordinator hands the launch tokens it held
// to the reserves manager.
type AssetDelivery struct {
	*Base
	Coordinator     types.Address
	Asset           types.Address
	ReservesManager types.Address
	Amount          *num.Uint
}

func NewAssetDelivery(ctx context.Context, coordinator, asset, reservesManager types.Address, amount *num.Uint) *AssetDelivery {
	return &AssetDelivery{
		Base:            newBase(ctx, AssetDeliveryEvent),
		Coordinator:     coordinator,
		Asset:           asset,
		ReservesManager: reservesManager,
		Amount:          amount.Clone(),
	}
}
