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

package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// Address identifies an account or a deployed contract.
type Address = common.Address

// ZeroAddress is never a valid admin, recipient or reserves manager.
var ZeroAddress = common.Address{}

// MaxBasisPoints is 100% expressed in basis points.
const MaxBasisPoints = 10000

func IsZeroAddress(a Address) bool {
	return a == ZeroAddress
}

// HexToAddress parses an hex encoded address, the string is not validated.
func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}
