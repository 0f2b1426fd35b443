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

package databases

import (
	"fmt"

	vgfs "github.com/mendi-finance/launch/libs/fs"

	cometbftdb "github.com/cometbft/cometbft-db"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const dbName = "snapshot"

type LevelDBDatabase struct {
	*cometbftdb.GoLevelDB

	dirPath string
}

func (d *LevelDBDatabase) Clear() error {
	if err := d.GoLevelDB.Close(); err != nil {
		return fmt.Errorf("could not close the connection: %w", err)
	}

	if err := RemoveAll(d.dirPath); err != nil {
		return err
	}

	adapter, err := initializeUnderlyingAdapter(d.dirPath)
	if err != nil {
		return err
	}
	d.GoLevelDB = adapter

	return nil
}

func NewLevelDBDatabase(dirPath string) (*LevelDBDatabase, error) {
	if err := vgfs.EnsureDir(dirPath); err != nil {
		return nil, fmt.Errorf("could not create the database directory: %w", err)
	}

	adapter, err := initializeUnderlyingAdapter(dirPath)
	if err != nil {
		return nil, err
	}

	return &LevelDBDatabase{
		dirPath:   dirPath,
		GoLevelDB: adapter,
	}, nil
}

func initializeUnderlyingAdapter(dirPath string) (*cometbftdb.GoLevelDB, error) {
	adapter, err := cometbftdb.NewGoLevelDBWithOpts(
		dbName, dirPath,
		&opt.Options{
			Filter:          filter.NewBloomFilter(10),
			BlockCacher:     opt.NoCacher,
			OpenFilesCacher: opt.NoCacher,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize LevelDB adapter: %w", err)
	}

	return adapter, nil
}
