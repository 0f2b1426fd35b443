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
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// ErrUintOverflow is returned when a value does not fit in 256 bits.
var ErrUintOverflow = errors.New("value overflows uint256")

// Uint is a 256 bits unsigned integer, the width of every token
// amount handled by the launch contracts.
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint with the value of the
// uint64 passed as a parameter.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to 0.
func UintZero() *Uint {
	return NewUint(0)
}

// UintOne returns a new Uint set to 1.
func UintOne() *Uint {
	return NewUint(1)
}

// Min returns the smallest of the 2 numbers.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns the largest of the 2 numbers.
func Max(a, b *Uint) *Uint {
	if a.GT(b) {
		return a
	}
	return b
}

// UintFromBig construct a new Uint with a big.Int
// returns true if overflow happened.
func UintFromBig(b *big.Int) (*Uint, bool) {
	u, overflow := uint256.FromBig(b)
	if overflow || b.Sign() < 0 {
		return NewUint(0), true
	}
	return &Uint{*u}, false
}

// UintFromString creates a new Uint from a string interpreted in the given
// base. Returns true if the string could not be parsed or overflowed.
func UintFromString(str string, base int) (*Uint, bool) {
	b, ok := big.NewInt(0).SetString(str, base)
	if !ok {
		return NewUint(0), true
	}
	return UintFromBig(b)
}

// MustUintFromString is UintFromString for constants, it panics on
// invalid input.
func MustUintFromString(str string, base int) *Uint {
	u, overflow := UintFromString(str, base)
	if overflow {
		panic(fmt.Sprintf("invalid uint256 %q", str))
	}
	return u
}

// Pow10 returns 10^exp.
func Pow10(exp uint64) *Uint {
	z := NewUint(0)
	z.u.Exp(uint256.NewInt(10), uint256.NewInt(exp))
	return z
}

// Sum just removes the need to write num.NewUint(0).AddSum(x, y, z)
// so you can write num.Sum(x, y, z) instead, equivalent to x + y + z.
func Sum(vals ...*Uint) *Uint {
	return NewUint(0).AddSum(vals...)
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z *Uint) SetUint64(val uint64) *Uint {
	z.u.SetUint64(val)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

// Add will add x and y then store the result into z
// this is equivalent to:
// `z = x + y`
// z is returned for convenience, no new variable is created.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddSum adds multiple values at the same time to a given uint
// so x.AddSum(y, z) is equivalent to x + y + z.
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.u.Add(&z.u, &x.u)
	}
	return z
}

// AddOverflow is Add reporting whether the addition wrapped around.
func (z *Uint) AddOverflow(x, y *Uint) (*Uint, bool) {
	_, overflow := z.u.AddOverflow(&x.u, &y.u)
	return z, overflow
}

// Sub will subtract y from x then store the result into z
// this is equivalent to:
// `z = x - y`
// z is returned for convenience, no new variable is created.
func (z *Uint) Sub(x, y *Uint) *Uint {
	z.u.Sub(&x.u, &y.u)
	return z
}

// SubOverflow is Sub reporting whether y was greater than x.
func (z *Uint) SubOverflow(x, y *Uint) (*Uint, bool) {
	_, overflow := z.u.SubOverflow(&x.u, &y.u)
	return z, overflow
}

// Mul will multiply x and y then store the result into z
// this is equivalent to:
// `z = x * y`.
func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

// MulOverflow is Mul reporting whether the product exceeded 256 bits.
func (z *Uint) MulOverflow(x, y *Uint) (*Uint, bool) {
	_, overflow := z.u.MulOverflow(&x.u, &y.u)
	return z, overflow
}

// Div will divide x by y then store the truncated result into z
// this is equivalent to:
// `z = x / y`
// Dividing by zero stores zero.
func (z *Uint) Div(x, y *Uint) *Uint {
	z.u.Div(&x.u, &y.u)
	return z
}

// MulDiv computes x * y / d with a 512 bits intermediate product and
// stores the truncated result into z. Returns true if the result does
// not fit in 256 bits or d is zero.
func (z *Uint) MulDiv(x, y, d *Uint) (*Uint, bool) {
	if d.IsZero() {
		z.u.Clear()
		return z, true
	}
	_, overflow := z.u.MulDivOverflow(&x.u, &y.u, &d.u)
	return z, overflow
}

// Lsh sets z = x << n.
func (z *Uint) Lsh(x *Uint, n uint) *Uint {
	z.u.Lsh(&x.u, n)
	return z
}

// LT with check if the value stored in u is
// lesser than oth
// this is equivalent to:
// `u < oth`.
func (u Uint) LT(oth *Uint) bool {
	return u.u.Lt(&oth.u)
}

// LTUint64 is LT against a uint64.
func (u Uint) LTUint64(oth uint64) bool {
	return u.u.LtUint64(oth)
}

// LTE with check if the value stored in u is
// lesser than or equal to oth.
func (u Uint) LTE(oth *Uint) bool {
	return u.u.Lt(&oth.u) || u.u.Eq(&oth.u)
}

// EQ with check if the value stored in u is
// equal to oth.
func (u Uint) EQ(oth *Uint) bool {
	return u.u.Eq(&oth.u)
}

// EQUint64 is EQ against a uint64.
func (u Uint) EQUint64(oth uint64) bool {
	return u.u.Eq(uint256.NewInt(oth))
}

// NEQ with check if the value stored in u is
// different than oth.
func (u Uint) NEQ(oth *Uint) bool {
	return !u.u.Eq(&oth.u)
}

// GT with check if the value stored in u is
// greater than oth.
func (u Uint) GT(oth *Uint) bool {
	return u.u.Gt(&oth.u)
}

// GTE with check if the value stored in u is
// greater than or equal to oth.
func (u Uint) GTE(oth *Uint) bool {
	return u.u.Gt(&oth.u) || u.u.Eq(&oth.u)
}

// IsZero return whether u == 0 or not.
func (u Uint) IsZero() bool {
	return u.u.IsZero()
}

// Copy copies x into z
// this is the equivalent to:
// z = x.
func (z *Uint) Copy(x *Uint) *Uint {
	z.u = x.u
	return z
}

// Clone create copy of this value
// this is the equivalent to:
// x := z.
func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

// Hex returns the hexadecimal representation
// of the stored value.
func (u Uint) Hex() string {
	return u.u.Hex()
}

// String returns the stored value as a base 10 string.
func (u Uint) String() string {
	return u.u.Dec()
}

// Format implement fmt.Formatter.
func (u Uint) Format(s fmt.State, ch rune) {
	u.u.Format(s, ch)
}

// MarshalText encodes the value as a base 10 string so amounts survive
// JSON and TOML round trips without precision loss.
func (u Uint) MarshalText() ([]byte, error) {
	return []byte(u.u.Dec()), nil
}

// UnmarshalText decodes a base 10 string.
func (u *Uint) UnmarshalText(text []byte) error {
	v, overflow := UintFromString(string(text), 10)
	if overflow {
		return fmt.Errorf("%q: %w", string(text), ErrUintOverflow)
	}
	u.u = v.u
	return nil
}
