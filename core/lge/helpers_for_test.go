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

package lge_test

import (
	"context"
	"testing"
	"time"

	"github.com/mendi-finance/launch/core/blocktime"
	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/lge"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const (
	periodDuration  = 3 * 24 * time.Hour
	bonusDuration   = 24 * time.Hour
	vestingGap      = 30 * time.Minute
	vestingDuration = 360 * 24 * time.Hour
	initialBps      = 5000
)

var (
	admin           = types.HexToAddress("0xad00000000000000000000000000000000000001")
	reservesManager = types.HexToAddress("0x4e5e000000000000000000000000000000000001")
	participant1    = types.HexToAddress("0xa11ce00000000000000000000000000000000000")
	participant2    = types.HexToAddress("0xb0b0000000000000000000000000000000000000")
	stranger        = types.HexToAddress("0x5742000000000000000000000000000000000000")

	mendiAddr            = types.HexToAddress("0x7000000000000000000000000000000000000001")
	usdcAddr             = types.HexToAddress("0x7000000000000000000000000000000000000002")
	vesterAddr           = types.HexToAddress("0x7000000000000000000000000000000000000003")
	bonusVesterAddr      = types.HexToAddress("0x7000000000000000000000000000000000000004")
	distributorAddr      = types.HexToAddress("0x7000000000000000000000000000000000000005")
	bonusDistributorAddr = types.HexToAddress("0x7000000000000000000000000000000000000006")
	coordinatorAddr      = types.HexToAddress("0x7000000000000000000000000000000000000007")

	mendiAmount        = num.MustParseUnits("2500000", 18)
	vestingAmount      = num.MustParseUnits("3200000", 18)
	bonusVestingAmount = num.MustParseUnits("300000", 18)
)

type launch struct {
	ctx   context.Context
	clock *clockwork.FakeClock
	ts    *blocktime.Svc
	bus   *broker.Broker
	evts  *broker.Collector

	mendi            *token.Token
	usdc             *token.Token
	vester           *vesting.Vester
	bonusVester      *vesting.Vester
	distributor      *distributor.Distributor
	bonusDistributor *distributor.Distributor
	coordinator      *lge.Coordinator

	periodBegin  time.Time
	periodEnd    time.Time
	vestingBegin time.Time
	vestingEnd   time.Time
}

func usdc(s string) *num.Uint {
	return num.MustParseUnits(s, 6)
}

// newLaunch deploys and wires the whole launch, the period starts 30
// minutes after the returned clock time.
func newLaunch(t *testing.T) *launch {
	t.Helper()
	ctx := context.Background()
	log := logging.NewTestLogger()
	bus := broker.New(log, broker.NewDefaultConfig())
	evts := broker.NewCollector()
	bus.Subscribe(evts)

	now := time.Unix(1690934400, 0)
	clock := clockwork.NewFakeClockAt(now)
	ts := blocktime.New(clock)

	l := &launch{
		ctx:   ctx,
		clock: clock,
		ts:    ts,
		bus:   bus,
		evts:  evts,
	}
	l.periodBegin = now.Add(30 * time.Minute)
	l.periodEnd = l.periodBegin.Add(periodDuration)
	l.vestingBegin = l.periodEnd.Add(vestingGap)
	l.vestingEnd = l.vestingBegin.Add(vestingDuration)

	var err error
	l.mendi, err = token.NewLaunchToken(ctx, log, token.NewDefaultConfig(), bus, mendiAddr, admin)
	require.NoError(t, err)
	l.usdc = token.New(log, token.NewDefaultConfig(), bus, usdcAddr, "USD Coin", "USDC", 6)
	for _, p := range []types.Address{participant1, participant2} {
		require.NoError(t, l.usdc.Mint(ctx, p, usdc("100000")))
	}

	l.vester, err = vesting.NewSaleVester(log, vesting.NewDefaultConfig(), bus, ts, l.mendi,
		vesterAddr, admin, vestingAmount, l.vestingBegin, l.vestingEnd, initialBps)
	require.NoError(t, err)
	l.bonusVester, err = vesting.NewSaleVester(log, vesting.NewDefaultConfig(), bus, ts, l.mendi,
		bonusVesterAddr, admin, bonusVestingAmount, l.vestingBegin, l.vestingEnd, initialBps)
	require.NoError(t, err)

	l.distributor, err = distributor.New(log, distributor.NewDefaultConfig(), bus, l.mendi, l.vester, distributorAddr, admin)
	require.NoError(t, err)
	l.bonusDistributor, err = distributor.New(log, distributor.NewDefaultConfig(), bus, l.mendi, l.bonusVester, bonusDistributorAddr, admin)
	require.NoError(t, err)
	require.NoError(t, l.vester.SetRecipient(ctx, admin, distributorAddr))
	require.NoError(t, l.bonusVester.SetRecipient(ctx, admin, bonusDistributorAddr))

	l.coordinator, err = lge.New(log, lge.NewDefaultConfig(), bus, ts, coordinatorAddr, lge.Params{
		Admin:            admin,
		ReservesManager:  reservesManager,
		Asset:            l.mendi,
		DepositToken:     l.usdc,
		Distributor:      l.distributor,
		BonusDistributor: l.bonusDistributor,
		PeriodBegin:      l.periodBegin,
		PeriodDuration:   periodDuration,
		BonusDuration:    bonusDuration,
	})
	require.NoError(t, err)

	require.NoError(t, l.mendi.Transfer(ctx, admin, vesterAddr, vestingAmount))
	require.NoError(t, l.mendi.Transfer(ctx, admin, bonusVesterAddr, bonusVestingAmount))
	require.NoError(t, l.mendi.Transfer(ctx, admin, coordinatorAddr, mendiAmount))
	require.NoError(t, l.distributor.SetAdmin(ctx, admin, coordinatorAddr))
	require.NoError(t, l.bonusDistributor.SetAdmin(ctx, admin, coordinatorAddr))

	evts.Reset()
	return l
}

func (l *launch) goTo(t time.Time) {
	l.clock.Advance(t.Sub(l.clock.Now()))
}

func (l *launch) deposit(t *testing.T, participant types.Address, amount *num.Uint) error {
	t.Helper()
	require.NoError(t, l.usdc.Approve(l.ctx, participant, coordinatorAddr, amount))
	return l.coordinator.Deposit(l.ctx, participant, amount)
}
