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
	"errors"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/ledger"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrLengthMismatch     = ledger.ErrLengthMismatch
	ErrReentrantCall      = errors.New("reentrant call")
	ErrShareIndexOverflow = errors.New("share index overflow")
)

// shareIndexScale is the fixed point scale of the share index, 2^160.
var shareIndexScale = num.UintZero().Lsh(num.UintOne(), 160)

// Recipient is the distribution state of a single account.
type Recipient struct {
	Shares         *num.Uint
	LastShareIndex *num.Uint
	Credit         *num.Uint
}

type recipient struct {
	lastShareIndex *num.Uint
	credit         *num.Uint
}

// Distributor pulls tokens from its upstream and splits them among its
// recipients pro rata to their shares. Every pulled amount raises a global
// share index, a recipient is credited with the index growth since its last
// update times its shares.
type Distributor struct {
	log       *logging.Logger
	cfg       Config
	broker    Broker
	asset     Asset
	claimable Claimable

	address    types.Address
	admin      types.Address
	ledger     *ledger.Ledger
	shareIndex *num.Uint
	recipients map[types.Address]*recipient

	// set while an operation is in progress
	locked bool
}

func New(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	asset Asset,
	claimable Claimable,
	address, admin types.Address,
) (*Distributor, error) {
	if types.IsZeroAddress(admin) {
		return nil, ErrInvalidAddress
	}

	log = log.Named(namedLogger).With(logging.Address("distributor", address))
	log.SetLevel(cfg.Level.Get())

	return &Distributor{
		log:        log,
		cfg:        cfg,
		broker:     broker,
		asset:      asset,
		claimable:  claimable,
		address:    address,
		admin:      admin,
		ledger:     ledger.New(address),
		shareIndex: num.UintZero(),
		recipients: map[types.Address]*recipient{},
	}, nil
}

// ReloadConf updates the internal configuration.
func (d *Distributor) ReloadConf(cfg Config) {
	d.log.Info("reloading configuration")
	if d.log.GetLevel() != cfg.Level.Get() {
		d.log.Info("updating log level",
			logging.String("old", d.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		d.log.SetLevel(cfg.Level.Get())
	}
	d.cfg = cfg
}

func (d *Distributor) Address() types.Address   { return d.address }
func (d *Distributor) Admin() types.Address     { return d.admin }
func (d *Distributor) Asset() types.Address     { return d.asset.Address() }
func (d *Distributor) Claimable() types.Address { return d.claimable.Address() }
func (d *Distributor) ShareIndex() *num.Uint    { return d.shareIndex.Clone() }
func (d *Distributor) TotalShares() *num.Uint   { return d.ledger.TotalShares() }

func (d *Distributor) Shares(account types.Address) *num.Uint {
	return d.ledger.Shares(account)
}

// Holders returns the accounts with a non zero share.
func (d *Distributor) Holders() []types.Address {
	return d.ledger.Holders()
}

func (d *Distributor) Recipient(account types.Address) Recipient {
	r := d.recipientFor(account)
	return Recipient{
		Shares:         d.ledger.Shares(account),
		LastShareIndex: r.lastShareIndex.Clone(),
		Credit:         r.credit.Clone(),
	}
}

// Pending returns what the account would receive without pulling from the
// upstream.
func (d *Distributor) Pending(account types.Address) *num.Uint {
	r := d.recipientFor(account)
	accrued, _ := d.accrued(account, r)
	return accrued.Add(accrued, r.credit)
}

func (d *Distributor) recipientFor(account types.Address) *recipient {
	if r, ok := d.recipients[account]; ok {
		return r
	}
	return &recipient{lastShareIndex: num.UintZero(), credit: num.UintZero()}
}

func (d *Distributor) lock() error {
	if d.locked {
		return ErrReentrantCall
	}
	d.locked = true
	return nil
}

func (d *Distributor) unlock() {
	d.locked = false
}

// updateShareIndex pulls from the upstream and spreads the received amount
// over the current total shares. Nothing is pulled while no share exists.
func (d *Distributor) updateShareIndex(ctx context.Context) error {
	total := d.ledger.TotalShares()
	if total.IsZero() {
		return nil
	}
	amount, err := d.claimable.Claim(ctx)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	delta, overflow := num.UintZero().MulDiv(amount, shareIndexScale, total)
	if overflow {
		return ErrShareIndexOverflow
	}
	if _, overflow := d.shareIndex.AddOverflow(d.shareIndex, delta); overflow {
		return ErrShareIndexOverflow
	}

	d.log.Debug("share index updated",
		logging.Uint("pulled", amount),
		logging.Uint("share-index", d.shareIndex),
	)
	return nil
}

func (d *Distributor) accrued(account types.Address, r *recipient) (*num.Uint, bool) {
	diff := num.UintZero().Sub(d.shareIndex, r.lastShareIndex)
	return num.UintZero().MulDiv(diff, d.ledger.Shares(account), shareIndexScale)
}

// updateCredit settles everything the account earned at its current shares.
func (d *Distributor) updateCredit(ctx context.Context, account types.Address) error {
	if err := d.updateShareIndex(ctx); err != nil {
		return err
	}
	return d.settle(account)
}

func (d *Distributor) settle(account types.Address) error {
	r := d.recipientFor(account)
	accrued, overflow := d.accrued(account, r)
	if overflow {
		return ErrShareIndexOverflow
	}
	r.credit.Add(r.credit, accrued)
	r.lastShareIndex = d.shareIndex.Clone()
	d.recipients[account] = r
	return nil
}

// Claim pulls from the upstream then transfers the caller's credit to it.
// A caller without shares or credit receives zero.
func (d *Distributor) Claim(ctx context.Context, caller types.Address) (*num.Uint, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.unlock()

	if err := d.updateCredit(ctx, caller); err != nil {
		return nil, err
	}

	r := d.recipients[caller]
	amount := r.credit.Clone()
	if amount.IsZero() {
		return amount, nil
	}

	r.credit = num.UintZero()
	if err := d.asset.Transfer(ctx, d.address, caller, amount); err != nil {
		r.credit = amount
		return nil, err
	}

	d.log.Debug("claimed",
		logging.Address("account", caller),
		logging.Uint("amount", amount),
	)
	d.broker.Send(events.NewDistributorClaim(ctx, d.address, caller, amount))
	return amount, nil
}

func (d *Distributor) SetAdmin(ctx context.Context, caller, admin types.Address) error {
	if caller != d.admin {
		return ErrUnauthorized
	}
	if types.IsZeroAddress(admin) {
		return ErrInvalidAddress
	}
	previous := d.admin
	d.admin = admin

	d.log.Info("admin changed",
		logging.Address("previous", previous),
		logging.Address("admin", admin),
	)
	d.broker.Send(events.NewAdmin(ctx, d.address, previous, admin, false))
	return nil
}

// EditRecipient replaces the shares of an account.
func (d *Distributor) EditRecipient(ctx context.Context, caller, account types.Address, shares *num.Uint) error {
	return d.EditRecipients(ctx, caller, []types.Address{account}, []*num.Uint{shares})
}

// EditRecipients replaces the shares of every account. Credits are settled
// at the previous shares first.
func (d *Distributor) EditRecipients(ctx context.Context, caller types.Address, accounts []types.Address, shares []*num.Uint) error {
	if caller != d.admin {
		return ErrUnauthorized
	}
	if len(accounts) != len(shares) {
		return ErrLengthMismatch
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.unlock()

	if err := d.updateShareIndex(ctx); err != nil {
		return err
	}
	for _, acc := range accounts {
		if err := d.settle(acc); err != nil {
			return err
		}
	}
	if err := d.ledger.SetBatch(d.address, accounts, shares); err != nil {
		return err
	}

	evts := make([]events.Event, 0, len(accounts))
	total := d.ledger.TotalShares()
	for _, acc := range accounts {
		evts = append(evts, events.NewRecipientShares(ctx, d.address, acc, d.ledger.Shares(acc), total))
	}
	d.sendBatch(evts)
	return nil
}

// AddRecipientShares increases the shares of an account by delta. It is used
// by an admin recording contributions.
func (d *Distributor) AddRecipientShares(ctx context.Context, caller, account types.Address, delta *num.Uint) error {
	if caller != d.admin {
		return ErrUnauthorized
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.unlock()

	if err := d.updateCredit(ctx, account); err != nil {
		return err
	}
	if err := d.ledger.Add(d.address, account, delta); err != nil {
		return err
	}

	d.broker.Send(events.NewRecipientShares(ctx, d.address, account, d.ledger.Shares(account), d.ledger.TotalShares()))
	return nil
}

func (d *Distributor) sendBatch(evts []events.Event) {
	for _, e := range evts {
		d.broker.Send(e)
	}
}
