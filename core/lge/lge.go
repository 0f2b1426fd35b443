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
	"errors"
	"fmt"
	"time"

	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/events"
	vgerrors "github.com/mendi-finance/launch/core/libs/errors"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/window"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

var (
	ErrBadCall               = errors.New("bad call")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrForbidden             = errors.New("forbidden")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTooSoon               = window.ErrTooSoon
	ErrTooLate               = window.ErrTooLate
	ErrInvalidValue          = errors.New("invalid value")
	ErrAlreadyFinalized      = errors.New("already finalized")
	ErrNotFinalized          = errors.New("not finalized")
	ErrInvalidDuration       = errors.New("invalid duration")
	ErrInsufficientBalance   = errors.New("deposit exceeds balance")
	ErrInsufficientAllowance = errors.New("deposit exceeds allowance")
	ErrNotDistributorAdmin   = errors.New("coordinator is not the distributor admin")
)

type State int

const (
	StatePending State = iota
	StateOpen
	StateEnded
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateOpen:
		return "open"
	case StateEnded:
		return "ended"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Params are set once at deployment.
type Params struct {
	Admin            types.Address
	ReservesManager  types.Address
	Asset            Asset
	DepositToken     DepositToken
	Distributor      Distributor
	BonusDistributor Distributor
	PeriodBegin      time.Time
	PeriodDuration   time.Duration
	BonusDuration    time.Duration
}

func (p Params) validate() error {
	errs := vgerrors.NewCumulatedErrors()
	if types.IsZeroAddress(p.Admin) {
		errs.Add(fmt.Errorf("admin is required: %w", ErrInvalidAddress))
	}
	if types.IsZeroAddress(p.ReservesManager) {
		errs.Add(fmt.Errorf("reserves manager is required: %w", ErrInvalidAddress))
	}
	if p.Asset == nil || p.DepositToken == nil || p.Distributor == nil || p.BonusDistributor == nil {
		errs.Add(fmt.Errorf("tokens and distributors are required: %w", ErrBadCall))
	}
	if p.PeriodDuration <= 0 {
		errs.Add(fmt.Errorf("period duration must be positive: %w", ErrInvalidDuration))
	}
	if p.BonusDuration < 0 || p.BonusDuration > p.PeriodDuration {
		errs.Add(fmt.Errorf("bonus duration must be within the period: %w", ErrInvalidDuration))
	}
	return errs.ErrorOrNil()
}

// Coordinator runs the liquidity generation event. Participants deposit
// during the period and receive shares in the distributor, deposits made
// during the bonus period are also recorded in the bonus distributor. Once
// the period is over the event is finalized and the deposits are handed to
// the reserves manager.
type Coordinator struct {
	log         *logging.Logger
	cfg         Config
	broker      Broker
	timeService TimeService

	address          types.Address
	asset            Asset
	depositToken     DepositToken
	distributor      Distributor
	bonusDistributor Distributor
	period           window.Window
	bonus            window.Window

	admin           types.Address
	pendingAdmin    types.Address
	reservesManager types.Address
	finalized       bool
}

func New(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	timeService TimeService,
	address types.Address,
	params Params,
) (*Coordinator, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	log = log.Named(namedLogger).With(logging.Address("coordinator", address))
	log.SetLevel(cfg.Level.Get())

	return &Coordinator{
		log:              log,
		cfg:              cfg,
		broker:           broker,
		timeService:      timeService,
		address:          address,
		asset:            params.Asset,
		depositToken:     params.DepositToken,
		distributor:      params.Distributor,
		bonusDistributor: params.BonusDistributor,
		period:           window.New(params.PeriodBegin, params.PeriodDuration),
		bonus:            window.New(params.PeriodBegin, params.BonusDuration),
		admin:            params.Admin,
		reservesManager:  params.ReservesManager,
	}, nil
}

// ReloadConf updates the internal configuration.
func (c *Coordinator) ReloadConf(cfg Config) {
	c.log.Info("reloading configuration")
	if c.log.GetLevel() != cfg.Level.Get() {
		c.log.Info("updating log level",
			logging.String("old", c.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		c.log.SetLevel(cfg.Level.Get())
	}
	c.cfg = cfg
}

func (c *Coordinator) minimumDeposit() *num.Uint {
	if c.cfg.MinimumDeposit == nil {
		return num.NewUint(defaultMinimumDeposit)
	}
	return c.cfg.MinimumDeposit
}

func (c *Coordinator) Address() types.Address         { return c.address }
func (c *Coordinator) Admin() types.Address           { return c.admin }
func (c *Coordinator) PendingAdmin() types.Address    { return c.pendingAdmin }
func (c *Coordinator) ReservesManager() types.Address { return c.reservesManager }
func (c *Coordinator) Finalized() bool                { return c.finalized }
func (c *Coordinator) PeriodBegin() time.Time         { return c.period.Begin() }
func (c *Coordinator) PeriodEnd() time.Time           { return c.period.End() }
func (c *Coordinator) PeriodDuration() time.Duration  { return c.period.Duration() }
func (c *Coordinator) BonusEnd() time.Time            { return c.bonus.End() }
func (c *Coordinator) BonusDuration() time.Duration   { return c.bonus.Duration() }

func (c *Coordinator) Asset() types.Address {
	return c.asset.Address()
}

func (c *Coordinator) DepositToken() types.Address {
	return c.depositToken.Address()
}

func (c *Coordinator) Distributor() types.Address {
	return c.distributor.Address()
}

func (c *Coordinator) BonusDistributor() types.Address {
	return c.bonusDistributor.Address()
}

func (c *Coordinator) MinimumDeposit() *num.Uint {
	return c.minimumDeposit().Clone()
}

func (c *Coordinator) DistributorTotalShares() *num.Uint {
	return c.distributor.TotalShares()
}

func (c *Coordinator) BonusDistributorTotalShares() *num.Uint {
	return c.bonusDistributor.TotalShares()
}

func (c *Coordinator) DistributorRecipients(account types.Address) distributor.Recipient {
	return c.distributor.Recipient(account)
}

func (c *Coordinator) BonusDistributorRecipients(account types.Address) distributor.Recipient {
	return c.bonusDistributor.Recipient(account)
}

func (c *Coordinator) State(now time.Time) State {
	switch {
	case c.finalized:
		return StateFinalized
	case c.period.Before(now):
		return StatePending
	case c.period.Contains(now):
		return StateOpen
	default:
		return StateEnded
	}
}

// BonusActive returns true while deposits also earn bonus shares.
func (c *Coordinator) BonusActive(now time.Time) bool {
	return c.period.Contains(now) && c.bonus.Contains(now)
}

// Deposit records amount of the deposit token for the caller. Every check
// runs before any state changes and the deposit token is pulled last.
func (c *Coordinator) Deposit(ctx context.Context, caller types.Address, amount *num.Uint) error {
	now := c.timeService.GetTimeNow()
	if err := c.period.Check(now); err != nil {
		return err
	}
	if amount.LT(c.minimumDeposit()) {
		return ErrInvalidValue
	}
	if c.depositToken.Allowance(caller, c.address).LT(amount) {
		return ErrInsufficientAllowance
	}
	if c.depositToken.BalanceOf(caller).LT(amount) {
		return ErrInsufficientBalance
	}
	bonus := c.bonus.Contains(now)
	if c.distributor.Admin() != c.address || (bonus && c.bonusDistributor.Admin() != c.address) {
		return ErrNotDistributorAdmin
	}

	shares := c.distributor.Shares(caller)
	bonusShares := c.bonusDistributor.Shares(caller)
	if err := c.distributor.AddRecipientShares(ctx, c.address, caller, amount); err != nil {
		return err
	}
	if bonus {
		if err := c.bonusDistributor.AddRecipientShares(ctx, c.address, caller, amount); err != nil {
			c.log.Error("could not record bonus shares",
				logging.Address("account", caller),
				logging.Uint("amount", amount),
				logging.Error(err),
			)
			c.restoreShares(ctx, caller, shares, nil)
			return err
		}
	}
	if err := c.depositToken.TransferFrom(ctx, c.address, caller, c.address, amount); err != nil {
		c.log.Error("could not pull deposit",
			logging.Address("account", caller),
			logging.Uint("amount", amount),
			logging.Error(err),
		)
		if !bonus {
			bonusShares = nil
		}
		c.restoreShares(ctx, caller, shares, bonusShares)
		return err
	}

	c.log.Debug("deposit",
		logging.Address("account", caller),
		logging.Uint("amount", amount),
		logging.Bool("bonus", bonus),
	)
	c.broker.Send(events.NewDeposit(ctx, c.address, caller, amount, bonus))
	return nil
}

// restoreShares puts back the shares an account held before a failed
// deposit. A nil bonus leaves the bonus distributor untouched.
func (c *Coordinator) restoreShares(ctx context.Context, account types.Address, shares, bonus *num.Uint) {
	if err := c.distributor.EditRecipient(ctx, c.address, account, shares); err != nil {
		c.log.Panic("could not restore shares", logging.Address("account", account), logging.Error(err))
	}
	if bonus == nil {
		return
	}
	if err := c.bonusDistributor.EditRecipient(ctx, c.address, account, bonus); err != nil {
		c.log.Panic("could not restore bonus shares", logging.Address("account", account), logging.Error(err))
	}
}

// Finalize closes the event and transfers every collected deposit to the
// reserves manager. It can only happen once, after the period.
func (c *Coordinator) Finalize(ctx context.Context) error {
	now := c.timeService.GetTimeNow()
	if !c.period.After(now) {
		return ErrTooSoon
	}
	if c.finalized {
		return ErrAlreadyFinalized
	}

	amount := c.depositToken.BalanceOf(c.address)
	c.finalized = true
	if !amount.IsZero() {
		if err := c.depositToken.Transfer(ctx, c.address, c.reservesManager, amount); err != nil {
			c.finalized = false
			return err
		}
	}

	c.log.Info("finalized",
		logging.Address("reserves-manager", c.reservesManager),
		logging.Uint("amount", amount),
	)
	c.broker.Send(events.NewFinalize(ctx, c.address, c.reservesManager, amount))
	return nil
}

// DeliverAssetToReservesManager sends the launched token still held by the
// coordinator to the reserves manager.
func (c *Coordinator) DeliverAssetToReservesManager(ctx context.Context, caller types.Address) (*num.Uint, error) {
	if caller != c.admin {
		return nil, ErrForbidden
	}
	if !c.finalized {
		return nil, ErrNotFinalized
	}
	amount := c.asset.BalanceOf(c.address)
	if amount.IsZero() {
		return amount, nil
	}
	if err := c.asset.Transfer(ctx, c.address, c.reservesManager, amount); err != nil {
		return nil, err
	}
	c.log.Info("asset delivered to reserves manager",
		logging.Address("reserves-manager", c.reservesManager),
		logging.Uint("amount", amount),
	)
	c.broker.Send(events.NewAssetDelivery(ctx, c.address, c.asset.Address(), c.reservesManager, amount))
	return amount, nil
}

// SetAdmin starts the admin handoff, the new admin must accept it.
func (c *Coordinator) SetAdmin(ctx context.Context, caller, admin types.Address) error {
	if caller != c.admin {
		return ErrForbidden
	}
	if types.IsZeroAddress(admin) {
		return ErrInvalidAddress
	}
	c.pendingAdmin = admin
	c.broker.Send(events.NewAdmin(ctx, c.address, c.admin, admin, true))
	return nil
}

// AcceptAdmin completes the admin handoff.
func (c *Coordinator) AcceptAdmin(ctx context.Context, caller types.Address) error {
	if types.IsZeroAddress(c.pendingAdmin) || caller != c.pendingAdmin {
		return ErrUnauthorized
	}
	previous := c.admin
	c.admin = c.pendingAdmin
	c.pendingAdmin = types.ZeroAddress

	c.log.Info("admin changed",
		logging.Address("previous", previous),
		logging.Address("admin", c.admin),
	)
	c.broker.Send(events.NewAdmin(ctx, c.address, previous, c.admin, false))
	return nil
}

func (c *Coordinator) SetReservesManager(ctx context.Context, caller, reservesManager types.Address) error {
	if caller != c.admin {
		return ErrForbidden
	}
	if types.IsZeroAddress(reservesManager) {
		return ErrInvalidAddress
	}
	previous := c.reservesManager
	c.reservesManager = reservesManager
	c.broker.Send(events.NewReservesManager(ctx, c.address, previous, reservesManager))
	return nil
}

// ReceiveNative rejects any direct transfer of the chain native currency.
func (c *Coordinator) ReceiveNative(_ context.Context, _ types.Address, _ *num.Uint) error {
	return ErrBadCall
}
