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

package distributor_test

import (
	"context"
	"testing"
	"time"

	"github.com/mendi-finance/launch/core/blocktime"
	"github.com/mendi-finance/launch/core/broker"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/distributor/mocks"
	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr       = types.HexToAddress("0x7000000000000000000000000000000000000001")
	upstreamAddr    = types.HexToAddress("0x7000000000000000000000000000000000000002")
	distributorAddr = types.HexToAddress("0x7000000000000000000000000000000000000003")

	admin = types.HexToAddress("0x8EA3504810baf96D6c9cd4872d70487B5b2B7C1B")
	user  = types.HexToAddress("0xb0b0000000000000000000000000000000000000")
	rec1  = types.HexToAddress("0x8E72a24221517E51502f20f387415a06b27A5b51")
	rec2  = types.HexToAddress("0x40Bd6e764DBc5C7268aaC775D8978881B16221F1")
)

type testDistributor struct {
	*distributor.Distributor
	ctrl      *gomock.Controller
	broker    *mocks.MockBroker
	asset     *mocks.MockAsset
	claimable *mocks.MockClaimable
}

func getTestDistributor(t *testing.T) *testDistributor {
	t.Helper()
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockBroker(ctrl)
	asset := mocks.NewMockAsset(ctrl)
	claimable := mocks.NewMockClaimable(ctrl)

	d, err := distributor.New(logging.NewTestLogger(), distributor.NewDefaultConfig(), broker, asset, claimable, distributorAddr, admin)
	require.NoError(t, err)

	return &testDistributor{
		Distributor: d,
		ctrl:        ctrl,
		broker:      broker,
		asset:       asset,
		claimable:   claimable,
	}
}

// env wires a distributor to a real token and block time.
type env struct {
	ctx   context.Context
	log   *logging.Logger
	clock *clockwork.FakeClock
	ts    *blocktime.Svc
	bus   *broker.Broker
	token *token.Token
}

func newEnv(t *testing.T, at time.Time) *env {
	t.Helper()
	log := logging.NewTestLogger()
	bus := broker.New(log, broker.NewDefaultConfig())
	clock := clockwork.NewFakeClockAt(at)
	return &env{
		ctx:   context.Background(),
		log:   log,
		clock: clock,
		ts:    blocktime.New(clock),
		bus:   bus,
		token: token.New(log, token.NewDefaultConfig(), bus, tokenAddr, "Mendi", "MENDI", 18),
	}
}

func (e *env) distributor(t *testing.T, upstream distributor.Claimable) *distributor.Distributor {
	t.Helper()
	d, err := distributor.New(e.log, distributor.NewDefaultConfig(), e.bus, e.token, upstream, distributorAddr, admin)
	require.NoError(t, err)
	return d
}

func expectRecipientSharesEvent(t *testing.T, broker *mocks.MockBroker, account types.Address, shares, total *num.Uint) {
	t.Helper()
	broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		e, ok := evt.(*events.RecipientShares)
		require.True(t, ok, "Event should be a RecipientShares, but is %T", evt)
		assert.Equal(t, account, e.Account)
		assert.Equal(t, shares.String(), e.Shares.String())
		assert.Equal(t, total.String(), e.TotalShares.String())
	})
}

func expectAdminEvent(t *testing.T, broker *mocks.MockBroker, previous, next types.Address) {
	t.Helper()
	broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		e, ok := evt.(*events.Admin)
		require.True(t, ok, "Event should be an Admin, but is %T", evt)
		assert.Equal(t, previous, e.Previous)
		assert.Equal(t, next, e.Admin)
		assert.False(t, e.Pending)
	})
}
