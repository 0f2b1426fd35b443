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

package deploy_test

import (
	"context"
	"testing"
	"time"

	"github.com/mendi-finance/launch/core/blocktime"
	"github.com/mendi-finance/launch/core/broker"
	bmocks "github.com/mendi-finance/launch/core/broker/mocks"
	"github.com/mendi-finance/launch/core/deploy"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/lge"
	"github.com/mendi-finance/launch/core/loyalty"
	"github.com/mendi-finance/launch/core/snapshot"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployerAddr = types.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	msig         = types.HexToAddress("0xe3CDa0A0896b70F0eBC6A1848096529AA7AEe9eE")
	usdcAddr     = types.HexToAddress("0x176211869ca2b568f2a7d4ee941e073a821ee1ff")
	participant1 = types.HexToAddress("0xa11ce00000000000000000000000000000000000")
	participant2 = types.HexToAddress("0xb0b0000000000000000000000000000000000000")
)

type testDeploy struct {
	*deploy.Deployer
	ctx    context.Context
	log    *logging.Logger
	clock  *clockwork.FakeClock
	bus    *broker.Broker
	cfg    deploy.Config
	params deploy.Params
	usdc   *token.Token
}

func getTestDeploy(t *testing.T) *testDeploy {
	t.Helper()
	ctx := context.Background()
	log := logging.NewTestLogger()
	bus := broker.New(log, broker.NewDefaultConfig())

	cfg := deploy.NewDefaultConfig()
	params, err := cfg.Params(18)
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(params.PeriodBegin.Add(-time.Hour))
	usdc := token.New(log, token.NewDefaultConfig(), bus, usdcAddr, "USD Coin", "USDC", 6)
	for _, p := range []types.Address{participant1, participant2} {
		require.NoError(t, usdc.Mint(ctx, p, num.MustParseUnits("1000", 6)))
	}

	return &testDeploy{
		Deployer: deploy.New(log, cfg, deploy.NewDefaultEngines(), bus, blocktime.New(clock), deployerAddr, 0),
		ctx:      ctx,
		log:      log,
		clock:    clock,
		bus:      bus,
		cfg:      cfg,
		params:   params,
		usdc:     usdc,
	}
}

func (d *testDeploy) goTo(t time.Time) {
	d.clock.Advance(t.Sub(d.clock.Now()))
}

func (d *testDeploy) deposit(t *testing.T, c *lge.Coordinator, participant types.Address, amount string) {
	t.Helper()
	a := num.MustParseUnits(amount, 6)
	require.NoError(t, d.usdc.Approve(d.ctx, participant, c.Address(), a))
	require.NoError(t, c.Deposit(d.ctx, participant, a))
}

func TestConfigParams(t *testing.T) {
	t.Run("Default configuration matches the launch", testDefaultParams)
	t.Run("Every invalid parameter is reported", testInvalidParams)
}

func testDefaultParams(t *testing.T) {
	p, err := deploy.NewDefaultConfig().Params(18)
	require.NoError(t, err)
	assert.Equal(t, num.MustParseUnits("2500000", 18).String(), p.LiquidityAmount.String())
	assert.Equal(t, num.MustParseUnits("3200000", 18).String(), p.VestingAmount.String())
	assert.Equal(t, num.MustParseUnits("300000", 18).String(), p.BonusVestingAmount.String())
	assert.Equal(t, num.MustParseUnits("6000000", 18).String(), p.Total().String())
	assert.Equal(t, int64(1689674400), p.PeriodBegin.Unix())
	assert.Equal(t, int64(1689944400+365*24*60*60), p.VestingEnd.Unix())
}

func testInvalidParams(t *testing.T) {
	cfg := deploy.NewDefaultConfig()
	cfg.LiquidityAmount = "lots"
	cfg.VestingAmount = "0"
	cfg.InitialUnlockBps = 10001
	cfg.BonusDuration.Duration = 4 * 24 * time.Hour
	cfg.VestingBegin = cfg.PeriodBegin

	_, err := cfg.Params(18)
	require.Error(t, err)
	assert.ErrorIs(t, err, deploy.ErrInvalidAmount)
	assert.ErrorIs(t, err, deploy.ErrInvalidSchedule)
	assert.Contains(t, err.Error(), "liquidity amount")
	assert.Contains(t, err.Error(), "vesting amount must be positive")
	assert.Contains(t, err.Error(), "bonus duration")
	assert.Contains(t, err.Error(), "vesting must begin after")
}

func TestDeployment(t *testing.T) {
	d := getTestDeploy(t)

	mendi, err := d.DeployLaunchToken(d.ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(deployerAddr, 0), mendi.Address())
	assert.Equal(t, num.MustParseUnits("100000000", 18).String(), mendi.BalanceOf(deployerAddr).String())

	launch, err := d.DeployLaunch(d.ctx, mendi, d.usdc, msig)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), d.Nonce())

	// wiring
	assert.Equal(t, launch.Distributor.Address(), launch.Vester.Recipient())
	assert.Equal(t, launch.BonusDistributor.Address(), launch.BonusVester.Recipient())
	assert.Equal(t, launch.Vester.Address(), launch.Distributor.Claimable())
	assert.Equal(t, launch.Coordinator.Address(), launch.Distributor.Admin())
	assert.Equal(t, launch.Coordinator.Address(), launch.BonusDistributor.Admin())
	assert.Equal(t, deployerAddr, launch.Coordinator.Admin())
	assert.Equal(t, msig, launch.Coordinator.ReservesManager())
	assert.Equal(t, uint64(5000), launch.Vester.InitialBps())

	addr, ok := d.Get(deploy.CoordinatorName)
	require.True(t, ok)
	assert.Equal(t, crypto.CreateAddress(deployerAddr, 5), addr)
	assert.Equal(t, []string{
		deploy.BonusDistributorName,
		deploy.BonusVesterName,
		deploy.DistributorName,
		deploy.CoordinatorName,
		deploy.LaunchTokenName,
		deploy.VesterName,
	}, d.Deployments())

	// funding
	assert.Equal(t, d.params.VestingAmount.String(), mendi.BalanceOf(launch.Vester.Address()).String())
	assert.Equal(t, d.params.BonusVestingAmount.String(), mendi.BalanceOf(launch.BonusVester.Address()).String())
	assert.Equal(t, d.params.LiquidityAmount.String(), mendi.BalanceOf(addr).String())
	assert.Equal(t, num.MustParseUnits("94000000", 18).String(), mendi.BalanceOf(deployerAddr).String())

	// recorded events
	count := map[events.Type]int{}
	for _, e := range launch.Events {
		count[e.Type()]++
	}
	assert.Equal(t, 2, count[events.RecipientChangedEvent])
	assert.Equal(t, 2, count[events.AdminEvent])
	assert.Equal(t, 3, count[events.TransferEvent])

	_, err = d.DeployLaunch(d.ctx, mendi, d.usdc, msig)
	assert.ErrorIs(t, err, deploy.ErrAlreadyDeployed)
}

func TestDeployLaunchUnfunded(t *testing.T) {
	d := getTestDeploy(t)
	mendi, err := token.NewLaunchToken(d.ctx, d.log, token.NewDefaultConfig(), d.bus, types.HexToAddress("0x7000000000000000000000000000000000000001"), msig)
	require.NoError(t, err)

	_, err = d.DeployLaunch(d.ctx, mendi, d.usdc, msig)
	assert.ErrorIs(t, err, deploy.ErrInsufficientFunding)
	assert.Empty(t, d.Deployments())
}

func TestDeployLoyaltyPoint(t *testing.T) {
	d := getTestDeploy(t)
	p, err := d.DeployLoyaltyPoint(d.ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(deployerAddr, 0), p.Address())
	assert.True(t, p.HasRole(loyalty.DefaultAdminRole, deployerAddr))
}

func TestDeployLaunchEngineConfigs(t *testing.T) {
	d := getTestDeploy(t)
	engines := deploy.NewDefaultEngines()
	engines.LGE.MinimumDeposit = num.MustParseUnits("100", 6)
	deployer := deploy.New(d.log, d.cfg, engines, d.bus, blocktime.New(d.clock), deployerAddr, 0)

	mendi, err := deployer.DeployLaunchToken(d.ctx)
	require.NoError(t, err)
	launch, err := deployer.DeployLaunch(d.ctx, mendi, d.usdc, msig)
	require.NoError(t, err)
	assert.Equal(t, "100000000", launch.Coordinator.MinimumDeposit().String())

	d.goTo(d.params.PeriodBegin)
	a := num.MustParseUnits("99", 6)
	require.NoError(t, d.usdc.Approve(d.ctx, participant1, launch.Coordinator.Address(), a))
	assert.ErrorIs(t, launch.Coordinator.Deposit(d.ctx, participant1, a), lge.ErrInvalidValue)
	d.deposit(t, launch.Coordinator, participant1, "100")
}

func TestDeployLaunchSubscription(t *testing.T) {
	ctx := context.Background()
	log := logging.NewTestLogger()
	ctrl := gomock.NewController(t)
	bus := bmocks.NewMockInterface(ctrl)
	bus.EXPECT().Send(gomock.Any()).AnyTimes()

	d := getTestDeploy(t)
	deployer := deploy.New(log, d.cfg, deploy.NewDefaultEngines(), bus, blocktime.New(d.clock), deployerAddr, 3)

	mendi, err := deployer.DeployLaunchToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(deployerAddr, 3), mendi.Address())
	assert.Equal(t, uint64(4), deployer.Nonce())

	// the collector only lives for the deployment
	bus.EXPECT().Subscribe(gomock.Any()).Times(1).Return(7)
	bus.EXPECT().Unsubscribe(7).Times(1)
	launch, err := deployer.DeployLaunch(ctx, mendi, d.usdc, msig)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), deployer.Nonce())
	assert.Empty(t, launch.Events)

	addr, ok := deployer.Get(deploy.CoordinatorName)
	require.True(t, ok)
	assert.Equal(t, launch.Coordinator.Address(), addr)
}

func TestLaunchScenario(t *testing.T) {
	d := getTestDeploy(t)
	mendi, err := d.DeployLaunchToken(d.ctx)
	require.NoError(t, err)
	launch, err := d.DeployLaunch(d.ctx, mendi, d.usdc, msig)
	require.NoError(t, err)
	c := launch.Coordinator

	// participant 1 in the bonus period, participant 2 after it
	d.goTo(d.params.PeriodBegin.Add(time.Hour))
	d.deposit(t, c, participant1, "100")
	d.goTo(d.params.PeriodBegin.Add(48 * time.Hour))
	d.deposit(t, c, participant2, "300")

	d.goTo(d.params.PeriodBegin.Add(d.params.PeriodDuration))
	require.NoError(t, c.Finalize(d.ctx))
	assert.Equal(t, num.MustParseUnits("400", 6).String(), d.usdc.BalanceOf(msig).String())

	delivered, err := c.DeliverAssetToReservesManager(d.ctx, deployerAddr)
	require.NoError(t, err)
	assert.Equal(t, d.params.LiquidityAmount.String(), delivered.String())

	// snapshot everything before the claims
	eng, err := snapshot.New(d.log, snapshot.NewTestConfig())
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.AddProviders(mendi, d.usdc))
	require.NoError(t, eng.AddProviders(launch.Providers()...))
	n, err := eng.Snapshot(d.ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	d.goTo(d.params.VestingEnd)
	claims := []struct {
		dist     *distributor.Distributor
		account  types.Address
		expected string
	}{
		{launch.Distributor, participant1, "800000"},
		{launch.Distributor, participant2, "2400000"},
		{launch.BonusDistributor, participant1, "300000"},
		{launch.BonusDistributor, participant2, "0"},
	}
	for _, cl := range claims {
		got, err := cl.dist.Claim(d.ctx, cl.account)
		require.NoError(t, err)
		assert.Equal(t, num.MustParseUnits(cl.expected, 18).String(), got.String())
	}
	assert.True(t, mendi.BalanceOf(launch.Vester.Address()).IsZero())
	assert.True(t, mendi.BalanceOf(launch.BonusVester.Address()).IsZero())

	// restoring rolls the claims back
	n, err = eng.Restore(d.ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.True(t, mendi.BalanceOf(participant1).IsZero())
	assert.Equal(t, d.params.VestingAmount.String(), mendi.BalanceOf(launch.Vester.Address()).String())
	assert.True(t, launch.Vester.Withdrawn().IsZero())
	assert.True(t, c.Finalized())
}
