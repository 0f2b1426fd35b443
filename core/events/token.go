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

type Transfer struct {
	*Base
	Token  types.Address
	From   types.Address
	To     types.Address
	Amount *num.Uint
}

func NewTransfer(ctx context.Context, token, from, to types.Address, amount *num.Uint) *Transfer {
	return &Transfer{
		Base:   newBase(ctx, TransferEvent),
		Token:  token,
		From:   from,
		To:     to,
		Amount: amount.Clone(),
	}
}

// IsParty returns true if the account is either side of the transfer.
func (t Transfer) IsParty(account types.Address) bool {
	return t.From == account || t.To == account
}

type Approval struct {
	*Base
	Token   types.Address
	Owner   types.Address
	Spender types.Address
	Amount  *num.Uint
}

func NewApproval(ctx context.Context, token, owner, spender types.Address, amount *num.Uint) *Approval {
	return &Approval{
		Base:    newBase(ctx, ApprovalEvent),
		Token:   token,
		Owner:   owner,
		Spender: spender,
		Amount:  amount.Clone(),
	}
}
