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
	"time"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

// RateClaimable releases a fixed amount per second since its last claim. It
// exposes the same surface as a Vester and serves as a predictable upstream
// for distributors.
type RateClaimable struct {
	log         *logging.Logger
	broker      Broker
	timeService TimeService
	asset       Asset

	address         types.Address
	recipient       types.Address
	rewardPerSecond *num.Uint
	lastClaim       time.Time
	withdrawn       *num.Uint
}

func NewRateClaimable(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	timeService TimeService,
	asset Asset,
	address, recipient types.Address,
	rewardPerSecond *num.Uint,
	lastClaim time.Time,
) (*RateClaimable, error) {
	if types.IsZeroAddress(recipient) {
		return nil, ErrInvalidAddress
	}

	log = log.Named(namedLogger).With(logging.Address("claimable", address))
	log.SetLevel(cfg.Level.Get())

	return &RateClaimable{
		log:             log,
		broker:          broker,
		timeService:     timeService,
		asset:           asset,
		address:         address,
		recipient:       recipient,
		rewardPerSecond: rewardPerSecond.Clone(),
		lastClaim:       lastClaim,
		withdrawn:       num.UintZero(),
	}, nil
}

func (r *RateClaimable) Address() types.Address   { return r.address }
func (r *RateClaimable) Recipient() types.Address { return r.recipient }
func (r *RateClaimable) LastClaim() time.Time     { return r.lastClaim }
func (r *RateClaimable) Withdrawn() *num.Uint     { return r.withdrawn.Clone() }

// Releasable returns rewardPerSecond times the seconds elapsed since the last
// claim.
func (r *RateClaimable) Releasable(t time.Time) *num.Uint {
	if !t.After(r.lastClaim) {
		return num.UintZero()
	}
	elapsed := num.NewUint(uint64(t.Unix() - r.lastClaim.Unix()))
	return elapsed.Mul(elapsed, r.rewardPerSecond)
}

func (r *RateClaimable) Claim(ctx context.Context) (*num.Uint, error) {
	now := r.timeService.GetTimeNow()
	amount := r.Releasable(now)
	if amount.IsZero() {
		return amount, nil
	}
	if r.asset.BalanceOf(r.address).LT(amount) {
		return nil, ErrInsufficientFunds
	}

	prevClaim, prevWithdrawn := r.lastClaim, r.withdrawn.Clone()
	r.lastClaim = now
	r.withdrawn.Add(r.withdrawn, amount)
	if err := r.asset.Transfer(ctx, r.address, r.recipient, amount); err != nil {
		r.lastClaim, r.withdrawn = prevClaim, prevWithdrawn
		return nil, err
	}

	r.broker.Send(events.NewVestingRelease(ctx, r.address, r.recipient, amount, r.withdrawn))
	return amount, nil
}

// SetRecipient changes the recipient, only the current recipient can do it.
func (r *RateClaimable) SetRecipient(ctx context.Context, caller, recipient types.Address) error {
	if caller != r.recipient {
		return ErrUnauthorized
	}
	if types.IsZeroAddress(recipient) {
		return ErrInvalidAddress
	}
	previous := r.recipient
	r.recipient = recipient
	r.broker.Send(events.NewRecipientChanged(ctx, r.address, previous, recipient))
	return nil
}
