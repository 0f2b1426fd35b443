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
	"encoding/json"

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type balance struct {
	Account types.Address `json:"account"`
	Amount  *num.Uint     `json:"amount"`
}

type allowance struct {
	Owner   types.Address `json:"owner"`
	Spender types.Address `json:"spender"`
	Amount  *num.Uint     `json:"amount"`
}

type tokenState struct {
	TotalSupply *num.Uint   `json:"total_supply"`
	Balances    []balance   `json:"balances"`
	Allowances  []allowance `json:"allowances"`
}

func (t *Token) Namespace() types.SnapshotNamespace {
	return types.TokenSnapshot
}

func (t *Token) Keys() []string {
	return []string{t.address.Hex()}
}

func (t *Token) GetState(k string) ([]byte, error) {
	if k != t.address.Hex() {
		return nil, types.ErrSnapshotKeyDoesNotExist
	}

	state := tokenState{
		TotalSupply: t.totalSupply.Clone(),
		Balances:    make([]balance, 0, len(t.balances)),
		Allowances:  []allowance{},
	}
	for _, acc := range sortedAddresses(maps.Keys(t.balances)) {
		state.Balances = append(state.Balances, balance{Account: acc, Amount: t.balances[acc].Clone()})
	}
	for _, owner := range sortedAddresses(maps.Keys(t.allowances)) {
		spenders := t.allowances[owner]
		for _, spender := range sortedAddresses(maps.Keys(spenders)) {
			state.Allowances = append(state.Allowances, allowance{
				Owner:   owner,
				Spender: spender,
				Amount:  spenders[spender].Clone(),
			})
		}
	}
	return json.Marshal(state)
}

func (t *Token) LoadState(_ context.Context, k string, payload []byte) error {
	if k != t.address.Hex() {
		return types.ErrSnapshotKeyDoesNotExist
	}

	state := tokenState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}

	t.totalSupply = num.UintZero()
	if state.TotalSupply != nil {
		t.totalSupply = state.TotalSupply
	}
	t.balances = make(map[types.Address]*num.Uint, len(state.Balances))
	for _, b := range state.Balances {
		t.balances[b.Account] = b.Amount
	}
	t.allowances = map[types.Address]map[types.Address]*num.Uint{}
	for _, a := range state.Allowances {
		if _, ok := t.allowances[a.Owner]; !ok {
			t.allowances[a.Owner] = map[types.Address]*num.Uint{}
		}
		t.allowances[a.Owner][a.Spender] = a.Amount
	}
	return nil
}

func sortedAddresses(addrs []types.Address) []types.Address {
	slices.SortFunc(addrs, func(a, b types.Address) int {
		return a.Cmp(b)
	})
	return addrs
}
