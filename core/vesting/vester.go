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

package vesting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

var (
	ErrInvalidCliff       = errors.New("invalid cliff")
	ErrCliffTooEarly      = fmt.Errorf("cliff is too early: %w", ErrInvalidCliff)
	ErrCliffTooLate       = fmt.Errorf("cliff is too late: %w", ErrInvalidCliff)
	ErrInvalidSchedule    = errors.New("vesting end must be after vesting begin")
	ErrInvalidBasisPoints = errors.New("initial unlock exceeds 100%")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInsufficientFunds  = errors.New("vester balance too low")
)

type Kind int

const (
	// KindPlain vests linearly between begin and end.
	KindPlain Kind = iota
	// KindSale unlocks a part of the amount at begin and vests the rest linearly.
	KindSale
	// KindCliff vests linearly from begin but releases nothing before the cliff.
	KindCliff
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSale:
		return "sale"
	case KindCliff:
		return "cliff"
	default:
		return "unknown"
	}
}

// Params are the immutable parameters of a vesting schedule.
type Params struct {
	Amount *num.Uint
	Begin  time.Time
	End    time.Time
	// Cliff is only set for KindCliff.
	Cliff *time.Time
	// InitialBps is the share of Amount unlocked at Begin, in basis points.
	InitialBps uint64
}

func (p Params) validate() error {
	if !p.End.After(p.Begin) {
		return ErrInvalidSchedule
	}
	if p.InitialBps > types.MaxBasisPoints {
		return ErrInvalidBasisPoints
	}
	if p.Cliff != nil {
		if p.Cliff.Before(p.Begin) {
			return ErrCliffTooEarly
		}
		if p.Cliff.After(p.End) {
			return ErrCliffTooLate
		}
	}
	return nil
}

// Vester releases a fixed amount of the asset to its recipient over time.
type Vester struct {
	log         *logging.Logger
	cfg         Config
	broker      Broker
	timeService TimeService
	asset       Asset

	kind      Kind
	address   types.Address
	recipient types.Address
	params    Params
	withdrawn *num.Uint
}

// New validates the parameters and returns a vester of the given kind.
func New(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	timeService TimeService,
	asset Asset,
	kind Kind,
	address, recipient types.Address,
	params Params,
) (*Vester, error) {
	if types.IsZeroAddress(recipient) {
		return nil, ErrInvalidAddress
	}
	if kind == KindCliff && params.Cliff == nil {
		return nil, ErrInvalidCliff
	}
	if kind != KindCliff {
		params.Cliff = nil
	}
	if kind != KindSale {
		params.InitialBps = 0
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	log = log.Named(namedLogger).With(
		logging.Address("vester", address),
		logging.String("kind", kind.String()),
	)
	log.SetLevel(cfg.Level.Get())

	params.Amount = params.Amount.Clone()
	return &Vester{
		log:         log,
		cfg:         cfg,
		broker:      broker,
		timeService: timeService,
		asset:       asset,
		kind:        kind,
		address:     address,
		recipient:   recipient,
		params:      params,
		withdrawn:   num.UintZero(),
	}, nil
}

// NewVester returns a vester releasing amount linearly between begin and end.
func NewVester(
	log *logging.Logger, cfg Config, broker Broker, timeService TimeService, asset Asset,
	address, recipient types.Address,
	amount *num.Uint, begin, end time.Time,
) (*Vester, error) {
	return New(log, cfg, broker, timeService, asset, KindPlain, address, recipient, Params{
		Amount: amount,
		Begin:  begin,
		End:    end,
	})
}

// NewSaleVester returns a vester unlocking initialBps of amount at begin,
// the remainder being released linearly until end.
func NewSaleVester(
	log *logging.Logger, cfg Config, broker Broker, timeService TimeService, asset Asset,
	address, recipient types.Address,
	amount *num.Uint, begin, end time.Time, initialBps uint64,
) (*Vester, error) {
	return New(log, cfg, broker, timeService, asset, KindSale, address, recipient, Params{
		Amount:     amount,
		Begin:      begin,
		End:        end,
		InitialBps: initialBps,
	})
}

// NewCliffVester returns a vester releasing nothing before cliff, then the
// amount vested linearly since begin.
func NewCliffVester(
	log *logging.Logger, cfg Config, broker Broker, timeService TimeService, asset Asset,
	address, recipient types.Address,
	amount *num.Uint, begin, end, cliff time.Time,
) (*Vester, error) {
	return New(log, cfg, broker, timeService, asset, KindCliff, address, recipient, Params{
		Amount: amount,
		Begin:  begin,
		End:    end,
		Cliff:  &cliff,
	})
}

// ReloadConf updates the internal configuration.
func (v *Vester) ReloadConf(cfg Config) {
	v.log.Info("reloading configuration")
	if v.log.GetLevel() != cfg.Level.Get() {
		v.log.Info("updating log level",
			logging.String("old", v.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		v.log.SetLevel(cfg.Level.Get())
	}
	v.cfg = cfg
}

func (v *Vester) Address() types.Address   { return v.address }
func (v *Vester) Recipient() types.Address { return v.recipient }
func (v *Vester) Kind() Kind               { return v.kind }
func (v *Vester) Amount() *num.Uint        { return v.params.Amount.Clone() }
func (v *Vester) Begin() time.Time         { return v.params.Begin }
func (v *Vester) End() time.Time           { return v.params.End }
func (v *Vester) InitialBps() uint64       { return v.params.InitialBps }
func (v *Vester) Withdrawn() *num.Uint     { return v.withdrawn.Clone() }

// Cliff returns the cliff, the second value is false if the vester has none.
func (v *Vester) Cliff() (time.Time, bool) {
	if v.params.Cliff == nil {
		return time.Time{}, false
	}
	return *v.params.Cliff, true
}

// ClaimableAt returns the total amount vested at the given time, including
// what was already withdrawn.
func (v *Vester) ClaimableAt(t time.Time) *num.Uint {
	p := v.params
	if p.Cliff != nil && t.Before(*p.Cliff) {
		return num.UintZero()
	}
	if t.Before(p.Begin) {
		return num.UintZero()
	}
	if !t.Before(p.End) {
		return p.Amount.Clone()
	}

	initial := num.UintZero()
	if p.InitialBps > 0 {
		initial.MulDiv(p.Amount, num.NewUint(p.InitialBps), num.NewUint(types.MaxBasisPoints))
	}
	remaining := num.UintZero().Sub(p.Amount, initial)
	elapsed := num.NewUint(uint64(t.Unix() - p.Begin.Unix()))
	duration := num.NewUint(uint64(p.End.Unix() - p.Begin.Unix()))
	// elapsed < duration so the result is below remaining
	linear, _ := num.UintZero().MulDiv(remaining, elapsed, duration)
	return linear.Add(linear, initial)
}

// Releasable returns what a claim at the given time would release.
func (v *Vester) Releasable(t time.Time) *num.Uint {
	vested := v.ClaimableAt(t)
	if vested.LTE(v.withdrawn) {
		return num.UintZero()
	}
	return vested.Sub(vested, v.withdrawn)
}

// Claim releases everything vested since the last claim to the recipient and
// returns the released amount. Releasing nothing is not an error.
func (v *Vester) Claim(ctx context.Context) (*num.Uint, error) {
	amount := v.Releasable(v.timeService.GetTimeNow())
	if amount.IsZero() {
		return amount, nil
	}
	if v.asset.BalanceOf(v.address).LT(amount) {
		return nil, ErrInsufficientFunds
	}

	prev := v.withdrawn.Clone()
	v.withdrawn.Add(v.withdrawn, amount)
	if err := v.asset.Transfer(ctx, v.address, v.recipient, amount); err != nil {
		v.withdrawn = prev
		return nil, err
	}

	v.log.Debug("vested amount released",
		logging.Address("recipient", v.recipient),
		logging.Uint("amount", amount),
		logging.Uint("withdrawn", v.withdrawn),
	)
	v.broker.Send(events.NewVestingRelease(ctx, v.address, v.recipient, amount, v.withdrawn))
	return amount, nil
}

// SetRecipient changes the recipient, only the current recipient can do it.
func (v *Vester) SetRecipient(ctx context.Context, caller, recipient types.Address) error {
	if caller != v.recipient {
		return ErrUnauthorized
	}
	if types.IsZeroAddress(recipient) {
		return ErrInvalidAddress
	}

	previous := v.recipient
	v.recipient = recipient
	v.log.Info("recipient changed",
		logging.Address("previous", previous),
		logging.Address("recipient", recipient),
	)
	v.broker.Send(events.NewRecipientChanged(ctx, v.address, previous, recipient))
	return nil
}
