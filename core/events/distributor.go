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

type RecipientShares struct {
	*Base
	Distributor types.Address
	Account     types.Address
	Shares      *num.Uint
	TotalShares *num.Uint
}

func NewRecipientShares(ctx context.Context, distributor, account types.Address, shares, totalShares *num.Uint) *RecipientShares {
	return &RecipientShares{
		Base:        newBase(ctx, RecipientSharesEvent),
		Distributor: distributor,
		Account:     account,
		Shares:      shares.Clone(),
		TotalShares: totalShares.Clone(),
	}
}

type DistributorClaim struct {
	*Base
	Distributor types.Address
	Account     types.Address
	Amount      *num.Uint
}

func NewDistributorClaim(ctx context.Context, distributor, account types.Address, amount *num.Uint) *DistributorClaim {
	return &DistributorClaim{
		Base:        newBase(ctx, DistributorClaimEvent),
		Distributor: distributor,
		Account:     account,
		Amount:      amount.Clone(),
	}
}

// Admin is sent when the admin of a contract changes. Pending is set when
// only the pending admin of a two steps handoff was updated.
type Admin struct {
	*Base
	Contract types.Address
	Previous types.Address
	Admin    types.Address
	Pending  bool
}

func NewAdmin(ctx context.Context, contract, previous, admin types.Address, pending bool) *Admin {
	return &Admin{
		Base:     newBase(ctx, AdminEvent),
		Contract: contract,
		Previous: previous,
		Admin:    admin,
		Pending:  pending,
	}
}
