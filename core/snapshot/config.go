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
	"errors"

	"github.com/mendi-finance/launch/config/encoding"
	vgfs "github.com/mendi-finance/launch/libs/fs"
	"github.com/mendi-finance/launch/logging"
)

const (
	namedLogger = "snapshot"
	goLevelDB   = "GOLevelDB"
	memDB       = "memory"
)

var (
	ErrInvalidStorageMethod = errors.New("invalid snapshot storage method")
	ErrDBPathNotADirectory  = errors.New("snapshot DB path is not a directory")
	ErrDBPathWithMemory     = errors.New("dbpath cannot be set when storage method is in-memory")
)

type Config struct {
	Level   encoding.LogLevel `choice:"debug" choice:"info" choice:"warning" choice:"error" choice:"panic" choice:"fatal" description:"Logging level (default: info)" long:"log-level"`
	Storage string            `choice:"GOLevelDB" choice:"memory" description:"Storage type to use" long:"storage"`
	DBPath  string            `description:"Path to database" long:"db-path"`
}

func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Storage: goLevelDB,
		DBPath:  "snapshots",
	}
}

func NewTestConfig() Config {
	cfg := NewDefaultConfig()
	cfg.Storage = memDB
	cfg.DBPath = ""
	return cfg
}

// Validate checks the storage settings. A missing DB directory is created
// when the engine starts.
func (c *Config) Validate() error {
	switch c.Storage {
	case memDB:
		if len(c.DBPath) != 0 {
			return ErrDBPathWithMemory
		}
		return nil
	case goLevelDB:
		isFile, err := vgfs.FileExists(c.DBPath)
		if err != nil {
			if errors.Is(err, vgfs.ErrIsADirectory) {
				return nil
			}
			return err
		}
		if isFile {
			return ErrDBPathNotADirectory
		}
		return nil
	default:
		return ErrInvalidStorageMethod
	}
}
