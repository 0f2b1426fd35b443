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

package metrics

import (
	"github.com/mendi-finance/launch/config/encoding"
)

// Config represents the configuration of the metrics server.
type Config struct {
	Port    int           `description:"Port to expose the metrics on" long:"port"`
	Path    string        `description:"Path the metrics are served on" long:"path"`
	Enabled encoding.Bool `description:"Serve the metrics"             long:"enabled"`
}

func NewDefaultConfig() Config {
	return Config{
		Port:    2112,
		Path:    "/metrics",
		Enabled: false,
	}
}
