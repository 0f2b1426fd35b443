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

package loyalty

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mendi-finance/launch/core/types"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type roleMembers struct {
	Role     common.Hash     `json:"role"`
	Accounts []types.Address `json:"accounts"`
}

type pointState struct {
	Roles []roleMembers   `json:"roles"`
	Token json.RawMessage `json:"token"`
}

func (p *Point) Namespace() types.SnapshotNamespace {
	return types.LoyaltySnapshot
}

func (p *Point) Keys() []string {
	return []string{p.address.Hex()}
}

func (p *Point) GetState(k string) ([]byte, error) {
	if k != p.address.Hex() {
		return nil, types.ErrSnapshotKeyDoesNotExist
	}

	tokenState, err := p.token.GetState(k)
	if err != nil {
		return nil, err
	}

	roles := maps.Keys(p.roles)
	slices.SortFunc(roles, func(a, b common.Hash) int {
		return bytes.Compare(a.Bytes(), b.Bytes())
	})
	state := pointState{
		Roles: make([]roleMembers, 0, len(roles)),
		Token: tokenState,
	}
	for _, role := range roles {
		state.Roles = append(state.Roles, roleMembers{Role: role, Accounts: p.Members(role)})
	}
	return json.Marshal(state)
}

func (p *Point) LoadState(ctx context.Context, k string, payload []byte) error {
	if k != p.address.Hex() {
		return types.ErrSnapshotKeyDoesNotExist
	}

	state := pointState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}
	if err := p.token.LoadState(ctx, k, state.Token); err != nil {
		return err
	}

	p.roles = make(map[common.Hash]map[types.Address]struct{}, len(state.Roles))
	for _, r := range state.Roles {
		members := make(map[types.Address]struct{}, len(r.Accounts))
		for _, acc := range r.Accounts {
			members[acc] = struct{}{}
		}
		p.roles[r.Role] = members
	}
	return nil
}
