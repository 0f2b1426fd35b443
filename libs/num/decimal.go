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

package num

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

type Decimal = decimal.Decimal

var (
	dzero = decimal.Zero
	d1    = decimal.NewFromInt(1)

	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrTooManyDigits  = errors.New("amount has more fractional digits than the token decimals")
)

func DecimalOne() Decimal {
	return d1
}

func DecimalZero() Decimal {
	return dzero
}

func DecimalFromUint(u *Uint) Decimal {
	return decimal.NewFromUint(&u.u)
}

func DecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}

func DecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}

func MustDecimalFromString(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseUnits converts a human readable amount ("2500000", "1.5") into base
// units of a token with the given decimals.
func ParseUnits(s string, decimals uint8) (*Uint, error) {
	d, err := DecimalFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, ErrTooManyDigits
	}
	u, overflow := UintFromBig(scaled.BigInt())
	if overflow {
		return nil, ErrUintOverflow
	}
	return u, nil
}

// MustParseUnits is ParseUnits for constants and tests.
func MustParseUnits(s string, decimals uint8) *Uint {
	u, err := ParseUnits(s, decimals)
	if err != nil {
		panic(err)
	}
	return u
}

// FormatUnits renders base units as a decimal amount of whole tokens.
func FormatUnits(u *Uint, decimals uint8) string {
	return decimal.NewFromBigInt(u.BigInt(), -int32(decimals)).String()
}

func NewDecimalFromBigInt(value *big.Int, exp int32) Decimal {
	return decimal.NewFromBigInt(value, exp)
}
