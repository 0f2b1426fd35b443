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
	"errors"
	"strings"
)

var ErrInvalidEventType = errors.New("invalid event type")

type Type int

// Event - the base event interface type. The sequence ID is set once by the
// broker when the event is sent.
type Event interface {
	Type() Type
	Context() context.Context
	Sequence() uint64
	SetSequenceID(s uint64)
}

// Base common denominator all event-bus events share.
type Base struct {
	ctx context.Context
	seq uint64
	et  Type
}

const (
	// All event type -> used by subscribers to just receive all events, has no actual corresponding event payload.
	All Type = iota
	TransferEvent
	ApprovalEvent
	VestingReleaseEvent
	RecipientChangedEvent
	RecipientSharesEvent
	DistributorClaimEvent
	AdminEvent
	DepositEvent
	FinalizeEvent
	ReservesManagerEvent
	LoyaltyMintEvent
	RoleEvent
	AssetDeliveryEvent
)

var eventStrings = map[Type]string{
	All:                   "ALL",
	TransferEvent:         "TransferEvent",
	ApprovalEvent:         "ApprovalEvent",
	VestingReleaseEvent:   "VestingReleaseEvent",
	RecipientChangedEvent: "RecipientChangedEvent",
	RecipientSharesEvent:  "RecipientSharesEvent",
	DistributorClaimEvent: "DistributorClaimEvent",
	AdminEvent:            "AdminEvent",
	DepositEvent:          "DepositEvent",
	FinalizeEvent:         "FinalizeEvent",
	ReservesManagerEvent:  "ReservesManagerEvent",
	LoyaltyMintEvent:      "LoyaltyMintEvent",
	RoleEvent:             "RoleEvent",
	AssetDeliveryEvent:    "AssetDeliveryEvent",
}

func newBase(ctx context.Context, t Type) *Base {
	return &Base{
		ctx: ctx,
		et:  t,
	}
}

// SetSequenceID sets the sequence ID only once, resending an event does not
// renumber it.
func (b *Base) SetSequenceID(s uint64) {
	if b.seq != 0 {
		return
	}
	b.seq = s
}

func (b Base) Sequence() uint64 {
	return b.seq
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) Type() Type {
	return b.et
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// TryFromString tries to parse a raw string into an event type, false indicates that.
func TryFromString(s string) (*Type, bool) {
	for k, v := range eventStrings {
		if strings.EqualFold(s, v) {
			return &k, true
		}
	}
	return nil, false
}
