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

package snapshot_test

import (
	"context"
	"testing"

	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/stretchr/testify/require"
)

var (
	mendiAddr = types.HexToAddress("0x7000000000000000000000000000000000000001")
	usdcAddr  = types.HexToAddress("0x7000000000000000000000000000000000000002")
	alice     = types.HexToAddress("0xa11ce00000000000000000000000000000000000")
	bob       = types.HexToAddress("0xb0b0000000000000000000000000000000000000")
)

type tokens struct {
	mendi *token.Token
	usdc  *token.Token
}

func (t tokens) providers() []types.StateProvider {
	return []types.StateProvider{t.mendi, t.usdc}
}

func newTokens(t *testing.T) tokens {
	t.Helper()
	log := logging.NewTestLogger()
	bus := broker.New(log, broker.NewDefaultConfig())
	return tokens{
		mendi: token.New(log, token.NewDefaultConfig(), bus, mendiAddr, "Mendi Finance", "MENDI", 18),
		usdc:  token.New(log, token.NewDefaultConfig(), bus, usdcAddr, "USD Coin", "USDC", 6),
	}
}

// populatedTokens returns tokens with balances and an allowance.
func populatedTokens(t *testing.T) tokens {
	t.Helper()
	ctx := context.Background()
	tk := newTokens(t)
	require.NoError(t, tk.mendi.Mint(ctx, alice, num.MustParseUnits("1000", 18)))
	require.NoError(t, tk.mendi.Transfer(ctx, alice, bob, num.MustParseUnits("250", 18)))
	require.NoError(t, tk.usdc.Mint(ctx, bob, num.MustParseUnits("42.5", 6)))
	require.NoError(t, tk.usdc.Approve(ctx, bob, alice, num.MustParseUnits("10", 6)))
	return tk
}

func requireSameTokens(t *testing.T, expected, actual tokens) {
	t.Helper()
	for _, acc := range []types.Address{alice, bob} {
		require.Equal(t, expected.mendi.BalanceOf(acc).String(), actual.mendi.BalanceOf(acc).String())
		require.Equal(t, expected.usdc.BalanceOf(acc).String(), actual.usdc.BalanceOf(acc).String())
	}
	require.Equal(t, expected.mendi.TotalSupply().String(), actual.mendi.TotalSupply().String())
	require.Equal(t, expected.usdc.TotalSupply().String(), actual.usdc.TotalSupply().String())
	require.Equal(t, expected.usdc.Allowance(bob, alice).String(), actual.usdc.Allowance(bob, alice).String())
}
