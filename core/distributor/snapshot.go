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
	"encoding/json"

	"github.com/mendi-finance/launch/core/ledger"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type recipientState struct {
	Account        types.Address `json:"account"`
	LastShareIndex *num.Uint     `json:"last_share_index"`
	Credit         *num.Uint     `json:"credit"`
}

type distributorState struct {
	Admin      types.Address    `json:"admin"`
	ShareIndex *num.Uint        `json:"share_index"`
	Shares     []ledger.Entry   `json:"shares"`
	Recipients []recipientState `json:"recipients"`
}

func (d *Distributor) Namespace() types.SnapshotNamespace {
	return types.DistributorSnapshot
}

func (d *Distributor) Keys() []string {
	return []string{d.address.Hex()}
}

func (d *Distributor) GetState(k string) ([]byte, error) {
	if k != d.address.Hex() {
		return nil, types.ErrSnapshotKeyDoesNotExist
	}

	accounts := maps.Keys(d.recipients)
	slices.SortFunc(accounts, func(a, b types.Address) int {
		return a.Cmp(b)
	})
	state := distributorState{
		Admin:      d.admin,
		ShareIndex: d.shareIndex.Clone(),
		Shares:     d.ledger.Entries(),
		Recipients: make([]recipientState, 0, len(accounts)),
	}
	for _, acc := range accounts {
		r := d.recipients[acc]
		state.Recipients = append(state.Recipients, recipientState{
			Account:        acc,
			LastShareIndex: r.lastShareIndex.Clone(),
			Credit:         r.credit.Clone(),
		})
	}
	return json.Marshal(state)
}

func (d *Distributor) LoadState(_ context.Context, k string, payload []byte) error {
	if k != d.address.Hex() {
		return types.ErrSnapshotKeyDoesNotExist
	}
	state := distributorState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}
	if types.IsZeroAddress(state.Admin) {
		return ErrInvalidAddress
	}
	if err := d.ledger.Restore(d.address, state.Shares); err != nil {
		return err
	}

	d.admin = state.Admin
	d.shareIndex = orZero(state.ShareIndex)
	d.recipients = make(map[types.Address]*recipient, len(state.Recipients))
	for _, r := range state.Recipients {
		d.recipients[r.Account] = &recipient{
			lastShareIndex: orZero(r.LastShareIndex),
			credit:         orZero(r.Credit),
		}
	}
	return nil
}

func orZero(u *num.Uint) *num.Uint {
	if u == nil {
		return num.UintZero()
	}
	return u
}
