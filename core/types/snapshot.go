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
	"context"
	"errors"
)

var (
	ErrSnapshotKeyDoesNotExist   = errors.New("unknown key for snapshot")
	ErrUnknownSnapshotNamespace  = errors.New("unknown snapshot namespace")
	ErrInvalidSnapshotNamespace  = errors.New("invalid snapshot namespace")
	ErrSnapshotProviderDuplicate = errors.New("snapshot provider already registered")
)

type SnapshotNamespace string

const (
	TokenSnapshot       SnapshotNamespace = "token"
	VestingSnapshot     SnapshotNamespace = "vesting"
	DistributorSnapshot SnapshotNamespace = "distributor"
	LGESnapshot         SnapshotNamespace = "lge"
	LoyaltySnapshot     SnapshotNamespace = "loyalty"
)

func (n SnapshotNamespace) String() string {
	return string(n)
}

// StateProvider is implemented by every engine whose state must survive a
// restart. Keys are unique within a namespace.
type StateProvider interface {
	Namespace() SnapshotNamespace
	Keys() []string
	GetState(key string) ([]byte, error)
	LoadState(ctx context.Context, key string, payload []byte) error
}
