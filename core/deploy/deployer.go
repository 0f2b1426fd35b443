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

package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/lge"
	"github.com/mendi-finance/launch/core/loyalty"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Deployment names, one per contract.
const (
	LaunchTokenName      = "Mendi"
	VesterName           = "Vester"
	DistributorName      = "Distributor"
	BonusVesterName      = "BonusVester"
	BonusDistributorName = "BonusDistributor"
	CoordinatorName      = "LiquidityGenerator"
	LoyaltyPointName     = "MendiLoyaltyPoint"
)

var (
	ErrAlreadyDeployed     = errors.New("already deployed")
	ErrInsufficientFunding = errors.New("deployer cannot fund the launch")
)

// Launch groups the contracts of the liquidity generation event.
type Launch struct {
	Vester           *vesting.Vester
	Distributor      *distributor.Distributor
	BonusVester      *vesting.Vester
	BonusDistributor *distributor.Distributor
	Coordinator      *lge.Coordinator
	// Events emitted while deploying, in order.
	Events []events.Event
}

// Providers returns the contracts of the launch whose state is snapshotted.
func (l *Launch) Providers() []types.StateProvider {
	return []types.StateProvider{
		l.Vester,
		l.BonusVester,
		l.Distributor,
		l.BonusDistributor,
		l.Coordinator,
	}
}

// Deployer creates the launch contracts on behalf of one account. Contract
// addresses are derived from the account and its nonce the way the chain
// does it.
type Deployer struct {
	log         *logging.Logger
	cfg         Config
	engines     Engines
	broker      Broker
	timeService TimeService

	account     types.Address
	nonce       uint64
	deployments map[string]types.Address
}

func New(
	log *logging.Logger,
	cfg Config,
	engines Engines,
	broker Broker,
	timeService TimeService,
	account types.Address,
	nonce uint64,
) *Deployer {
	log = log.Named(namedLogger).With(logging.Address("deployer", account))
	log.SetLevel(cfg.Level.Get())

	return &Deployer{
		log:         log,
		cfg:         cfg,
		engines:     engines,
		broker:      broker,
		timeService: timeService,
		account:     account,
		nonce:       nonce,
		deployments: map[string]types.Address{},
	}
}

// ReloadConf updates the internal configuration.
func (d *Deployer) ReloadConf(cfg Config) {
	d.log.Info("reloading configuration")
	if d.log.GetLevel() != cfg.Level.Get() {
		d.log.Info("updating log level",
			logging.String("old", d.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		d.log.SetLevel(cfg.Level.Get())
	}
	d.cfg = cfg
}

func (d *Deployer) Account() types.Address { return d.account }
func (d *Deployer) Nonce() uint64          { return d.nonce }

// Get returns the address of a named deployment.
func (d *Deployer) Get(name string) (types.Address, bool) {
	addr, ok := d.deployments[name]
	return addr, ok
}

// Deployments returns the deployment names, sorted.
func (d *Deployer) Deployments() []string {
	names := maps.Keys(d.deployments)
	slices.Sort(names)
	return names
}

// allocate reserves the next contract address for name.
func (d *Deployer) allocate(name string) (types.Address, error) {
	if addr, ok := d.deployments[name]; ok {
		return types.ZeroAddress, fmt.Errorf("%s at %s: %w", name, addr.Hex(), ErrAlreadyDeployed)
	}
	addr := crypto.CreateAddress(d.account, d.nonce)
	d.nonce++
	d.deployments[name] = addr
	d.log.Info("deploying", logging.String("name", name), logging.Address("address", addr))
	return addr, nil
}

// DeployLaunchToken creates the launch token, its whole supply goes to the
// deployer.
func (d *Deployer) DeployLaunchToken(ctx context.Context) (*token.Token, error) {
	addr, err := d.allocate(LaunchTokenName)
	if err != nil {
		return nil, err
	}
	return token.NewLaunchToken(ctx, d.log, d.engines.Token, d.broker, addr, d.account)
}

// DeployLoyaltyPoint creates the loyalty point token administered by the
// deployer.
func (d *Deployer) DeployLoyaltyPoint(ctx context.Context) (*loyalty.Point, error) {
	addr, err := d.allocate(LoyaltyPointName)
	if err != nil {
		return nil, err
	}
	return loyalty.New(ctx, d.log, d.engines.Loyalty, d.broker, addr, d.account)
}

// DeployLaunch creates the vesters, distributors and coordinator of the
// liquidity generation event, wires them together and funds them from the
// deployer's launch token balance.
func (d *Deployer) DeployLaunch(
	ctx context.Context,
	launchToken *token.Token,
	depositToken lge.DepositToken,
	reservesManager types.Address,
) (*Launch, error) {
	params, err := d.cfg.Params(launchToken.Decimals())
	if err != nil {
		return nil, err
	}
	if launchToken.BalanceOf(d.account).LT(params.Total()) {
		return nil, fmt.Errorf("%s needed: %w", params.Total(), ErrInsufficientFunding)
	}

	collector := broker.NewCollector()
	id := d.broker.Subscribe(collector)
	defer d.broker.Unsubscribe(id)

	l := &Launch{}
	if l.Vester, l.Distributor, err = d.deployDistribution(ctx, launchToken, params, VesterName, DistributorName, params.VestingAmount); err != nil {
		return nil, err
	}
	if l.BonusVester, l.BonusDistributor, err = d.deployDistribution(ctx, launchToken, params, BonusVesterName, BonusDistributorName, params.BonusVestingAmount); err != nil {
		return nil, err
	}

	addr, err := d.allocate(CoordinatorName)
	if err != nil {
		return nil, err
	}
	l.Coordinator, err = lge.New(d.log, d.engines.LGE, d.broker, d.timeService, addr, lge.Params{
		Admin:            d.account,
		ReservesManager:  reservesManager,
		Asset:            launchToken,
		DepositToken:     depositToken,
		Distributor:      l.Distributor,
		BonusDistributor: l.BonusDistributor,
		PeriodBegin:      params.PeriodBegin,
		PeriodDuration:   params.PeriodDuration,
		BonusDuration:    params.BonusDuration,
	})
	if err != nil {
		return nil, err
	}

	// the coordinator records deposits as distributor shares
	for _, dist := range []*distributor.Distributor{l.Distributor, l.BonusDistributor} {
		if dist.Admin() == addr {
			continue
		}
		if err := dist.SetAdmin(ctx, d.account, addr); err != nil {
			return nil, err
		}
	}

	funding := []struct {
		to     types.Address
		amount *num.Uint
	}{
		{l.Vester.Address(), params.VestingAmount},
		{l.BonusVester.Address(), params.BonusVestingAmount},
		{addr, params.LiquidityAmount},
	}
	for _, f := range funding {
		if err := launchToken.Transfer(ctx, d.account, f.to, f.amount); err != nil {
			return nil, err
		}
	}

	l.Events = collector.Events()
	d.log.Info("launch deployed",
		logging.Address("coordinator", addr),
		logging.Int("events", len(l.Events)),
	)
	return l, nil
}

// deployDistribution creates a sale vester and the distributor it releases
// to. The vester starts with the deployer as recipient and is pointed at the
// distributor once both exist.
func (d *Deployer) deployDistribution(
	ctx context.Context,
	launchToken *token.Token,
	params Params,
	vesterName, distributorName string,
	amount *num.Uint,
) (*vesting.Vester, *distributor.Distributor, error) {
	vesterAddr, err := d.allocate(vesterName)
	if err != nil {
		return nil, nil, err
	}
	vester, err := vesting.NewSaleVester(
		d.log, d.engines.Vesting, d.broker, d.timeService, launchToken,
		vesterAddr, d.account,
		amount, params.VestingBegin, params.VestingEnd, params.InitialUnlockBps,
	)
	if err != nil {
		return nil, nil, err
	}

	distributorAddr, err := d.allocate(distributorName)
	if err != nil {
		return nil, nil, err
	}
	dist, err := distributor.New(d.log, d.engines.Distributor, d.broker, launchToken, vester, distributorAddr, d.account)
	if err != nil {
		return nil, nil, err
	}

	if vester.Recipient() != distributorAddr {
		if err := vester.SetRecipient(ctx, d.account, distributorAddr); err != nil {
			return nil, nil, err
		}
	}
	return vester, dist, nil
}
