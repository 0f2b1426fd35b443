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

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

const (
	LaunchTokenName     = "Mendi Finance"
	LaunchTokenSymbol   = "MENDI"
	LaunchTokenDecimals = 18
)

// LaunchTokenSupply is the fixed supply, in whole tokens, minted when the
// launch token is created.
var LaunchTokenSupply = num.NewUint(100_000_000)

// NewLaunchToken creates the launch token and mints its whole supply to the
// given account. No other mint ever happens.
func NewLaunchToken(
	ctx context.Context,
	log *logging.Logger,
	cfg Config,
	broker Broker,
	address, to types.Address,
) (*Token, error) {
	t := New(log, cfg, broker, address, LaunchTokenName, LaunchTokenSymbol, LaunchTokenDecimals)
	supply := num.UintZero().Mul(LaunchTokenSupply, num.Pow10(LaunchTokenDecimals))
	if err := t.Mint(ctx, to, supply); err != nil {
		return nil, err
	}
	return t, nil
}
