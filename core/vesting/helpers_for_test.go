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

package vesting_test

import (
	"testing"
	"time"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/core/vesting/mocks"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vesterAddr = types.HexToAddress("0x7e57000000000000000000000000000000000001")
	recipient  = types.HexToAddress("0xa11ce00000000000000000000000000000000000")
	other      = types.HexToAddress("0xb0b0000000000000000000000000000000000000")

	vestingAmount = num.MustParseUnits("12000000", 18)
	vestingBegin  = time.Unix(1690934400, 0)
	vestingEnd    = vestingBegin.Add(2 * 365 * 24 * time.Hour)
	vestingCliff  = vestingBegin.Add(3 * 30 * 24 * time.Hour)
)

type testEngine struct {
	ctrl   *gomock.Controller
	broker *mocks.MockBroker
	ts     *mocks.MockTimeService
	asset  *mocks.MockAsset
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &testEngine{
		ctrl:   ctrl,
		broker: mocks.NewMockBroker(ctrl),
		ts:     mocks.NewMockTimeService(ctrl),
		asset:  mocks.NewMockAsset(ctrl),
	}
}

func (e *testEngine) vester(t *testing.T, kind vesting.Kind, params vesting.Params) *vesting.Vester {
	t.Helper()
	v, err := vesting.New(logging.NewTestLogger(), vesting.NewDefaultConfig(), e.broker, e.ts, e.asset, kind, vesterAddr, recipient, params)
	require.NoError(t, err)
	return v
}

func expectVestingReleaseEvent(t *testing.T, broker *mocks.MockBroker, amount, withdrawn *num.Uint) {
	t.Helper()
	broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		e, ok := evt.(*events.VestingRelease)
		require.True(t, ok, "Event should be a VestingRelease, but is %T", evt)
		assert.Equal(t, amount.String(), e.Amount.String())
		assert.Equal(t, withdrawn.String(), e.Withdrawn.String())
	})
}

func expectRecipientChangedEvent(t *testing.T, broker *mocks.MockBroker, previous, next types.Address) {
	t.Helper()
	broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		e, ok := evt.(*events.RecipientChanged)
		require.True(t, ok, "Event should be a RecipientChanged, but is %T", evt)
		assert.Equal(t, previous, e.Previous)
		assert.Equal(t, next, e.Recipient)
	})
}
