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

// VestingRelease is emitted each time a vesting contract releases tokens to
// its recipient.
type VestingRelease struct {
	*Base
	Vester    types.Address
	Recipient types.Address
	Amount    *num.Uint
	Withdrawn *num.Uint
}

func NewVestingRelease(ctx context.Context, vester, recipient types.Address, amount, withdrawn *num.Uint) *VestingRelease {
	return &VestingRelease{
		Base:      newBase(ctx, VestingReleaseEvent),
		Vester:    vester,
		Recipient: recipient,
		Amount:    amount.Clone(),
		Withdrawn: withdrawn.Clone(),
	}
}

type RecipientChanged struct {
	*Base
	Contract  types.Address
	Previous  types.Address
	Recipient types.Address
}

func NewRecipientChanged(ctx context.Context, contract, previous, recipient types.Address) *RecipientChanged {
	return &RecipientChanged{
		Base:      newBase(ctx, RecipientChangedEvent),
		Contract:  contract,
		Previous:  previous,
		Recipient: recipient,
	}
}
