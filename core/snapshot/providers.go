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

package snapshot

import (
	"github.com/mendi-finance/launch/core/types"

	"golang.org/x/exp/slices"
)

// providersInCallOrder is the order state is restored in. Tokens come first
// so balances exist before the contracts holding them are restored.
var providersInCallOrder = []types.SnapshotNamespace{
	types.TokenSnapshot,
	types.LoyaltySnapshot,
	types.VestingSnapshot,
	types.DistributorSnapshot,
	types.LGESnapshot,
}

type payload struct {
	namespace types.SnapshotNamespace
	key       string
	data      []byte
}

func groupPayloadsPerNamespace(payloads []payload) map[types.SnapshotNamespace][]payload {
	payloadsPerNamespace := make(map[types.SnapshotNamespace][]payload, len(providersInCallOrder))
	for _, p := range payloads {
		payloadsPerNamespace[p.namespace] = append(payloadsPerNamespace[p.namespace], p)
	}
	return payloadsPerNamespace
}

func isKnownNamespace(ns types.SnapshotNamespace) bool {
	return slices.Contains(providersInCallOrder, ns)
}
