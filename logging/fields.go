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

package logging

import (
	"time"

	"github.com/mendi-finance/launch/libs/num"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// String constructs a field with the given key and value.
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

// Strings constructs a field that carries a slice of strings.
func Strings(key string, val []string) zap.Field {
	return zap.Strings(key, val)
}

// Error constructs a field that lazily stores err.Error() under the key "error".
func Error(err error) zap.Field {
	return zap.Error(err)
}

// Bool constructs a field that carries a bool.
func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

// Int64 constructs a field with the given key and value.
func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

// Uint64 constructs a field with the given key and value.
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Uint constructs a field holding a 256 bits amount rendered in base 10.
func Uint(key string, val *num.Uint) zap.Field {
	if val == nil {
		return zap.String(key, "nil")
	}
	return zap.String(key, val.String())
}

// Decimal constructs a field holding a decimal.
func Decimal(key string, val num.Decimal) zap.Field {
	return zap.String(key, val.String())
}

// Time display a time.
func Time(key string, val time.Time) zap.Field {
	return zap.Time(key, val)
}

// Duration constructs a field with the given key and value.
func Duration(key string, val time.Duration) zap.Field {
	return zap.Duration(key, val)
}

// Address displays an account or contract address in its checksummed form.
func Address(key string, val common.Address) zap.Field {
	return zap.String(key, val.Hex())
}

// Reflect constructs a field by running reflection over all the
// field of value passed as a parameter.
func Reflect(key string, val interface{}) zap.Field {
	return zap.Reflect(key, val)
}
