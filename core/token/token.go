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

package token

import (
	"context"
	"errors"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

var (
	ErrInsufficientBalance   = errors.New("transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrSupplyOverflow        = errors.New("total supply overflow")
)

// maxAllowance is never decreased by TransferFrom.
var maxAllowance = num.MustUintFromString("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)

// Token is an in-memory fungible token ledger. Every failing call leaves the
// balances untouched.
type Token struct {
	log    *logging.Logger
	cfg    Config
	broker Broker

	address  types.Address
	name     string
	symbol   string
	decimals uint8

	totalSupply *num.Uint
	balances    map[types.Address]*num.Uint
	// owner -> spender -> amount
	allowances map[types.Address]map[types.Address]*num.Uint
}

func New(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	address types.Address,
	name, symbol string,
	decimals uint8,
) *Token {
	log = log.Named(namedLogger).With(logging.String("symbol", symbol))
	log.SetLevel(cfg.Level.Get())

	return &Token{
		log:         log,
		cfg:         cfg,
		broker:      broker,
		address:     address,
		name:        name,
		symbol:      symbol,
		decimals:    decimals,
		totalSupply: num.UintZero(),
		balances:    map[types.Address]*num.Uint{},
		allowances:  map[types.Address]map[types.Address]*num.Uint{},
	}
}

// ReloadConf updates the internal configuration.
func (t *Token) ReloadConf(cfg Config) {
	t.log.Info("reloading configuration")
	if t.log.GetLevel() != cfg.Level.Get() {
		t.log.Info("updating log level",
			logging.String("old", t.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		t.log.SetLevel(cfg.Level.Get())
	}
	t.cfg = cfg
}

func (t *Token) Address() types.Address { return t.address }
func (t *Token) Name() string           { return t.name }
func (t *Token) Symbol() string         { return t.symbol }
func (t *Token) Decimals() uint8        { return t.decimals }

func (t *Token) TotalSupply() *num.Uint {
	return t.totalSupply.Clone()
}

func (t *Token) BalanceOf(account types.Address) *num.Uint {
	if b, ok := t.balances[account]; ok {
		return b.Clone()
	}
	return num.UintZero()
}

func (t *Token) Allowance(owner, spender types.Address) *num.Uint {
	if a, ok := t.allowances[owner][spender]; ok {
		return a.Clone()
	}
	return num.UintZero()
}

// Mint creates amount new tokens credited to the given account.
func (t *Token) Mint(ctx context.Context, to types.Address, amount *num.Uint) error {
	if types.IsZeroAddress(to) {
		return ErrInvalidAddress
	}
	supply, overflow := num.UintZero().AddOverflow(t.totalSupply, amount)
	if overflow {
		return ErrSupplyOverflow
	}
	t.totalSupply = supply
	t.credit(to, amount)

	t.log.Debug("minted",
		logging.Address("to", to),
		logging.Uint("amount", amount),
	)
	t.broker.Send(events.NewTransfer(ctx, t.address, types.ZeroAddress, to, amount))
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(ctx context.Context, from, to types.Address, amount *num.Uint) error {
	if err := t.checkTransfer(from, to, amount); err != nil {
		return err
	}
	t.move(ctx, from, to, amount)
	return nil
}

// Approve sets the amount the spender is allowed to transfer out of the
// owner's balance.
func (t *Token) Approve(ctx context.Context, owner, spender types.Address, amount *num.Uint) error {
	if types.IsZeroAddress(owner) || types.IsZeroAddress(spender) {
		return ErrInvalidAddress
	}
	if _, ok := t.allowances[owner]; !ok {
		t.allowances[owner] = map[types.Address]*num.Uint{}
	}
	t.allowances[owner][spender] = amount.Clone()
	t.broker.Send(events.NewApproval(ctx, t.address, owner, spender, amount))
	return nil
}

// TransferFrom moves amount out of the from account on behalf of spender,
// consuming the allowance.
func (t *Token) TransferFrom(ctx context.Context, spender, from, to types.Address, amount *num.Uint) error {
	allowance := t.Allowance(from, spender)
	if allowance.LT(amount) {
		return ErrInsufficientAllowance
	}
	if err := t.checkTransfer(from, to, amount); err != nil {
		return err
	}
	if !allowance.EQ(maxAllowance) {
		t.allowances[from][spender] = allowance.Sub(allowance, amount)
	}
	t.move(ctx, from, to, amount)
	return nil
}

func (t *Token) checkTransfer(from, to types.Address, amount *num.Uint) error {
	if types.IsZeroAddress(from) || types.IsZeroAddress(to) {
		return ErrInvalidAddress
	}
	if t.BalanceOf(from).LT(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

func (t *Token) move(ctx context.Context, from, to types.Address, amount *num.Uint) {
	t.debit(from, amount)
	t.credit(to, amount)

	t.log.Debug("transfer",
		logging.Address("from", from),
		logging.Address("to", to),
		logging.Uint("amount", amount),
	)
	t.broker.Send(events.NewTransfer(ctx, t.address, from, to, amount))
}

func (t *Token) credit(account types.Address, amount *num.Uint) {
	b, ok := t.balances[account]
	if !ok {
		b = num.UintZero()
		t.balances[account] = b
	}
	b.Add(b, amount)
}

func (t *Token) debit(account types.Address, amount *num.Uint) {
	b := t.balances[account]
	b.Sub(b, amount)
	if b.IsZero() {
		delete(t.balances, account)
	}
}
