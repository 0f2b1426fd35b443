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
	"encoding/json"

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
)

type vesterState struct {
	Recipient types.Address `json:"recipient"`
	Withdrawn *num.Uint     `json:"withdrawn"`
}

func (v *Vester) Namespace() types.SnapshotNamespace {
	return types.VestingSnapshot
}

func (v *Vester) Keys() []string {
	return []string{v.address.Hex()}
}

func (v *Vester) GetState(k string) ([]byte, error) {
	if k != v.address.Hex() {
		return nil, types.ErrSnapshotKeyDoesNotExist
	}
	return json.Marshal(vesterState{
		Recipient: v.recipient,
		Withdrawn: v.withdrawn.Clone(),
	})
}

// LoadState restores the mutable part of the vester, the schedule itself is
// set at construction.
func (v *Vester) LoadState(_ context.Context, k string, payload []byte) error {
	if k != v.address.Hex() {
		return types.ErrSnapshotKeyDoesNotExist
	}
	state := vesterState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}
	if types.IsZeroAddress(state.Recipient) {
		return ErrInvalidAddress
	}
	v.recipient = state.Recipient
	v.withdrawn = num.UintZero()
	if state.Withdrawn != nil {
		v.withdrawn = state.Withdrawn
	}
	return nil
}
