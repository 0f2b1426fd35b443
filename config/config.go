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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/deploy"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/lge"
	"github.com/mendi-finance/launch/core/loyalty"
	"github.com/mendi-finance/launch/core/snapshot"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/libs/crypto"
	vgfs "github.com/mendi-finance/launch/libs/fs"
	"github.com/mendi-finance/launch/logging"
	"github.com/mendi-finance/launch/metrics"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	forkingNetworkEnv = "FORKING_NETWORK"
	rpcURLEnvSuffix   = "_RPC_URL"
)

var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrNoNetwork      = errors.New("no network selected")
	ErrUnknownAddress = errors.New("unknown named address")
	ErrInvalidAddress = errors.New("invalid address")
)

// Network describes a chain the launch is deployed to and the accounts it
// interacts with there.
type Network struct {
	ChainID   uint64            `long:"chain-id"`
	RPCURL    string            `long:"rpc-url"`
	Addresses map[string]string `long:"addresses"`
}

// Address returns the named address, checksummed.
func (n Network) Address(name string) (types.Address, error) {
	s, ok := n.Addresses[name]
	if !ok || len(s) == 0 {
		return types.ZeroAddress, fmt.Errorf("%s: %w", name, ErrUnknownAddress)
	}
	if !crypto.EthereumIsValidAddress(s) {
		return types.ZeroAddress, fmt.Errorf("%s %q: %w", name, s, ErrInvalidAddress)
	}
	return types.HexToAddress(crypto.EthereumChecksumAddress(s)), nil
}

type Config struct {
	Logging     logging.Config     `group:"Logging"     namespace:"logging"`
	Broker      broker.Config      `group:"Broker"      namespace:"broker"`
	Token       token.Config       `group:"Token"       namespace:"token"`
	Vesting     vesting.Config     `group:"Vesting"     namespace:"vesting"`
	Distributor distributor.Config `group:"Distributor" namespace:"distributor"`
	LGE         lge.Config         `group:"LGE"         namespace:"lge"`
	Loyalty     loyalty.Config     `group:"Loyalty"     namespace:"loyalty"`
	Snapshot    snapshot.Config    `group:"Snapshot"    namespace:"snapshot"`
	Metrics     metrics.Config     `group:"Metrics"     namespace:"metrics"`
	Deploy      deploy.Config      `group:"Deploy"      namespace:"deploy"`

	ForkingNetwork string             `description:"Network the launch runs against" long:"forking-network"`
	Networks       map[string]Network `group:"Networks"                              namespace:"networks"`
}

func NewDefaultConfig() Config {
	return Config{
		Logging:     logging.NewDefaultConfig(),
		Broker:      broker.NewDefaultConfig(),
		Token:       token.NewDefaultConfig(),
		Vesting:     vesting.NewDefaultConfig(),
		Distributor: distributor.NewDefaultConfig(),
		LGE:         lge.NewDefaultConfig(),
		Loyalty:     loyalty.NewDefaultConfig(),
		Snapshot:    snapshot.NewDefaultConfig(),
		Metrics:     metrics.NewDefaultConfig(),
		Deploy:      deploy.NewDefaultConfig(),
		Networks: map[string]Network{
			"linea": {
				ChainID: 59144,
				Addresses: map[string]string{
					"usdc":      "0x176211869ca2b568f2a7d4ee941e073a821ee1ff",
					"msig":      "0xe3CDa0A0896b70F0eBC6A1848096529AA7AEe9eE",
					"vc":        "0xcc22F6AA610D1b2a0e89EF228079cB3e1831b1D1",
					"vault":     "0x1d0188c4B276A09366D05d6Be06aF61a73bC7535",
					"factory":   "0xBe6c6A389b82306e88d74d1692B67285A9db9A47",
					"usdcWhale": "0xd5efeedaeadbfaa3c5741010cce8a2cf61df2630",
				},
			},
			"linea_goerli": {
				ChainID:   59140,
				Addresses: map[string]string{},
			},
		},
	}
}

// Engines returns the configuration of the contracts the deployer creates.
func (c Config) Engines() deploy.Engines {
	return deploy.Engines{
		Token:       c.Token,
		Vesting:     c.Vesting,
		Distributor: c.Distributor,
		LGE:         c.LGE,
		Loyalty:     c.Loyalty,
	}
}

// Read loads the configuration file found in rootPath on top of the
// defaults.
func Read(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, configFileName)
	buf, err := vgfs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv loads the given .env files into the environment, missing files
// are ignored. Variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides the configuration with the environment:
// FORKING_NETWORK selects the network and <NETWORK>_RPC_URL sets its RPC
// endpoint.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(forkingNetworkEnv); len(v) > 0 {
		c.ForkingNetwork = strings.ToLower(v)
	}
	for name, n := range c.Networks {
		if v := os.Getenv(strings.ToUpper(name) + rpcURLEnvSuffix); len(v) > 0 {
			n.RPCURL = v
			c.Networks[name] = n
		}
	}
}

// ActiveNetwork returns the network selected by ForkingNetwork.
func (c *Config) ActiveNetwork() (Network, error) {
	if len(c.ForkingNetwork) == 0 {
		return Network{}, ErrNoNetwork
	}
	n, ok := c.Networks[c.ForkingNetwork]
	if !ok {
		return Network{}, fmt.Errorf("%s: %w", c.ForkingNetwork, ErrUnknownNetwork)
	}
	return n, nil
}
