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
	"encoding/json"

	"github.com/mendi-finance/launch/core/types"
)

type coordinatorState struct {
	Admin           types.Address `json:"admin"`
	PendingAdmin    types.Address `json:"pending_admin"`
	ReservesManager types.Address `json:"reserves_manager"`
	Finalized       bool          `json:"finalized"`
}

func (c *Coordinator) Namespace() types.SnapshotNamespace {
	return types.LGESnapshot
}

func (c *Coordinator) Keys() []string {
	return []string{c.address.Hex()}
}

func (c *Coordinator) GetState(k string) ([]byte, error) {
	if k != c.address.Hex() {
		return nil, types.ErrSnapshotKeyDoesNotExist
	}
	return json.Marshal(coordinatorState{
		Admin:           c.admin,
		PendingAdmin:    c.pendingAdmin,
		ReservesManager: c.reservesManager,
		Finalized:       c.finalized,
	})
}

func (c *Coordinator) LoadState(_ context.Context, k string, payload []byte) error {
	if k != c.address.Hex() {
		return types.ErrSnapshotKeyDoesNotExist
	}
	state := coordinatorState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}
	if types.IsZeroAddress(state.Admin) || types.IsZeroAddress(state.ReservesManager) {
		return ErrInvalidAddress
	}
	c.admin = state.Admin
	c.pendingAdmin = state.PendingAdmin
	c.reservesManager = state.ReservesManager
	c.finalized = state.Finalized
	return nil
}
