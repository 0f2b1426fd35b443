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
	"github.com/mendi-finance/launch/config/encoding"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

const namedLogger = "lge"

// defaultMinimumDeposit is expressed in base units of the deposit token.
const defaultMinimumDeposit = 10

// Config represents the configuration of the liquidity generation event.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// MinimumDeposit in base units of the deposit token.
	MinimumDeposit *num.Uint `long:"minimum-deposit"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		MinimumDeposit: num.NewUint(defaultMinimumDeposit),
	}
}
