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

package lge

import (
	"context"
	"time"

	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks github.com/mendi-finance/launch/core/lge Broker,TimeService,Asset,DepositToken,Distributor

type Broker interface {
	Send(events.Event)
}

type TimeService interface {
	GetTimeNow() time.Time
}

// Asset is the launched token, part of it is held by the coordinator until
// it is delivered to the reserves manager.
type Asset interface {
	Address() types.Address
	BalanceOf(account types.Address) *num.Uint
	Transfer(ctx context.Context, from, to types.Address, amount *num.Uint) error
}

// DepositToken is the token participants contribute.
type DepositToken interface {
	Address() types.Address
	BalanceOf(account types.Address) *num.Uint
	Allowance(owner, spender types.Address) *num.Uint
	Transfer(ctx context.Context, from, to types.Address, amount *num.Uint) error
	TransferFrom(ctx context.Context, spender, from, to types.Address, amount *num.Uint) error
}

// Distributor records the contribution of every participant as shares. The
// coordinator must be its admin.
type Distributor interface {
	Address() types.Address
	Admin() types.Address
	Recipient(account types.Address) distributor.Recipient
	Shares(account types.Address) *num.Uint
	TotalShares() *num.Uint
	AddRecipientShares(ctx context.Context, caller, account types.Address, delta *num.Uint) error
	EditRecipient(ctx context.Context, caller, account types.Address, shares *num.Uint) error
}
