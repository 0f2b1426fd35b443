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

	"github.com/ethereum/go-ethereum/common"
)

type LoyaltyMint struct {
	*Base
	Token  types.Address
	Signer types.Address
	To     types.Address
	Amount *num.Uint
}

func NewLoyaltyMint(ctx context.Context, token, signer, to types.Address, amount *num.Uint) *LoyaltyMint {
	return &LoyaltyMint{
		Base:   newBase(ctx, LoyaltyMintEvent),
		Token:  token,
		Signer: signer,
		To:     to,
		Amount: amount.Clone(),
	}
}

type Role struct {
	*Base
	Contract types.Address
	Role     common.Hash
	Account  types.Address
	Sender   types.Address
	Granted  bool
}

func NewRole(ctx context.Context, contract types.Address, role common.Hash, account, sender types.Address, granted bool) *Role {
	return &Role{
		Base:     newBase(ctx, RoleEvent),
		Contract: contract,
		Role:     role,
		Account:  account,
		Sender:   sender,
		Granted:  granted,
	}
}
