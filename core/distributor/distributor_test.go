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
	"errors"
	"testing"
	"time"

	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminFunctions(t *testing.T) {
	t.Run("Admin can set a new admin", testSetAdmin)
	t.Run("Non admin cannot set a new admin", testSetAdminUnauthorized)
	t.Run("Admin can edit a recipient", testEditRecipient)
	t.Run("Non admin cannot edit a recipient", testEditRecipientUnauthorized)
	t.Run("Admin can edit multiple recipients", testEditRecipients)
	t.Run("Edit with different lengths fails without effect", testEditRecipientsLengthMismatch)
	t.Run("Non admin cannot add shares", testAddRecipientSharesUnauthorized)
}

func testSetAdmin(t *testing.T) {
	d := getTestDistributor(t)
	expectAdminEvent(t, d.broker, admin, user)
	require.NoError(t, d.SetAdmin(context.Background(), admin, user))
	assert.Equal(t, user, d.Admin())

	assert.ErrorIs(t, d.SetAdmin(context.Background(), user, types.ZeroAddress), distributor.ErrInvalidAddress)
}

func testSetAdminUnauthorized(t *testing.T) {
	d := getTestDistributor(t)
	assert.ErrorIs(t, d.SetAdmin(context.Background(), user, user), distributor.ErrUnauthorized)
	assert.Equal(t, admin, d.Admin())
}

func testEditRecipient(t *testing.T) {
	d := getTestDistributor(t)
	expectRecipientSharesEvent(t, d.broker, user, num.NewUint(1), num.NewUint(1))
	require.NoError(t, d.EditRecipient(context.Background(), admin, user, num.NewUint(1)))
	assert.Equal(t, "1", d.Recipient(user).Shares.String())
}

func testEditRecipientUnauthorized(t *testing.T) {
	d := getTestDistributor(t)
	assert.ErrorIs(t, d.EditRecipient(context.Background(), user, user, num.NewUint(1)), distributor.ErrUnauthorized)
	assert.True(t, d.TotalShares().IsZero())
}

func testEditRecipients(t *testing.T) {
	d := getTestDistributor(t)
	ctx := context.Background()

	expectRecipientSharesEvent(t, d.broker, rec1, num.NewUint(250), num.NewUint(4750))
	expectRecipientSharesEvent(t, d.broker, rec2, num.NewUint(4500), num.NewUint(4750))
	require.NoError(t, d.EditRecipients(ctx, admin,
		[]types.Address{rec1, rec2},
		[]*num.Uint{num.NewUint(250), num.NewUint(4500)},
	))
	assert.Equal(t, "250", d.Shares(rec1).String())
	assert.Equal(t, "4500", d.Shares(rec2).String())
	assert.Equal(t, "4750", d.TotalShares().String())

	// a second edit pulls from the upstream first
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.UintZero(), nil)
	expectRecipientSharesEvent(t, d.broker, rec1, num.NewUint(500), num.NewUint(5000))
	require.NoError(t, d.EditRecipient(ctx, admin, rec1, num.NewUint(500)))
}

func testEditRecipientsLengthMismatch(t *testing.T) {
	d := getTestDistributor(t)
	err := d.EditRecipients(context.Background(), admin,
		[]types.Address{rec1, rec2},
		[]*num.Uint{num.NewUint(250)},
	)
	assert.ErrorIs(t, err, distributor.ErrLengthMismatch)
	assert.True(t, d.TotalShares().IsZero())
}

func testAddRecipientSharesUnauthorized(t *testing.T) {
	d := getTestDistributor(t)
	err := d.AddRecipientShares(context.Background(), user, user, num.NewUint(10))
	assert.ErrorIs(t, err, distributor.ErrUnauthorized)
}

func TestClaiming(t *testing.T) {
	t.Run("Claim without shares returns zero without pulling", testClaimNoShares)
	t.Run("Shares 1 and 3 receive a quarter and three quarters", testClaimOneToThree)
	t.Run("Claims at different times follow the upstream rate", testClaimRate)
	t.Run("Re-entering a claim from the upstream fails", testClaimReentrant)
	t.Run("Failed transfer keeps the credit", testClaimTransferFails)
	t.Run("Edits settle credit at the previous shares", testEditSettlesCredit)
}

func testClaimNoShares(t *testing.T) {
	d := getTestDistributor(t)
	// no upstream call, no transfer, no event expected
	amount, err := d.Claim(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func testClaimOneToThree(t *testing.T) {
	begin := time.Unix(1690934400, 0)
	e := newEnv(t, begin.Add(-100*time.Second))
	rate := num.NewUint(100)

	upstream, err := vesting.NewRateClaimable(e.log, vesting.NewDefaultConfig(), e.bus, e.ts, e.token, upstreamAddr, admin, rate, begin)
	require.NoError(t, err)
	require.NoError(t, e.token.Mint(e.ctx, upstreamAddr, num.NewUint(1_000_000)))

	d := e.distributor(t, upstream)
	require.NoError(t, upstream.SetRecipient(e.ctx, admin, d.Address()))
	require.NoError(t, d.EditRecipients(e.ctx, admin,
		[]types.Address{rec1, rec2},
		[]*num.Uint{num.NewUint(1), num.NewUint(3)},
	))

	// both claim at the same block, 40 seconds after the upstream start
	e.clock.Advance(140 * time.Second)
	got1, err := d.Claim(e.ctx, rec1)
	require.NoError(t, err)
	got2, err := d.Claim(e.ctx, rec2)
	require.NoError(t, err)

	assert.Equal(t, "1000", got1.String())
	assert.Equal(t, "3000", got2.String())
	assert.Equal(t, "1000", e.token.BalanceOf(rec1).String())
	assert.Equal(t, "3000", e.token.BalanceOf(rec2).String())
	assert.True(t, e.token.BalanceOf(d.Address()).IsZero())

	// claiming again in the same block releases nothing
	again, err := d.Claim(e.ctx, rec1)
	require.NoError(t, err)
	assert.True(t, again.IsZero())
}

func testClaimRate(t *testing.T) {
	lastClaim := time.Unix(1690934400, 0)
	e := newEnv(t, lastClaim.Add(-time.Hour))
	rate := num.MustParseUnits("100000000", 18)

	upstream, err := vesting.NewRateClaimable(e.log, vesting.NewDefaultConfig(), e.bus, e.ts, e.token, upstreamAddr, admin, rate, lastClaim)
	require.NoError(t, err)
	require.NoError(t, e.token.Mint(e.ctx, upstreamAddr, num.MustParseUnits("1000000000000", 18)))

	d := e.distributor(t, upstream)
	require.NoError(t, upstream.SetRecipient(e.ctx, admin, d.Address()))

	accounts := []types.Address{rec1, rec2, user}
	shares := []*num.Uint{num.NewUint(2), num.NewUint(3), num.NewUint(5)}
	total := num.NewUint(10)
	require.NoError(t, d.EditRecipients(e.ctx, admin, accounts, shares))

	e.clock.Advance(time.Hour)
	for i, acc := range accounts {
		e.clock.Advance(time.Second)
		elapsed := num.NewUint(uint64(e.ts.GetTimeNow().Sub(lastClaim) / time.Second))
		expected := num.UintZero().Mul(rate, elapsed)
		expected.Mul(expected, shares[i]).Div(expected, total)

		got, err := d.Claim(e.ctx, acc)
		require.NoError(t, err)
		assert.Equal(t, expected.String(), got.String())
		assert.Equal(t, expected.String(), e.token.BalanceOf(acc).String())
	}
}

func testClaimReentrant(t *testing.T) {
	d := getTestDistributor(t)
	ctx := context.Background()
	expectRecipientSharesEvent(t, d.broker, user, num.NewUint(1), num.NewUint(1))
	require.NoError(t, d.EditRecipient(ctx, admin, user, num.NewUint(1)))

	var inner error
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).DoAndReturn(func(ctx context.Context) (*num.Uint, error) {
		_, inner = d.Claim(ctx, user)
		return num.UintZero(), nil
	})
	amount, err := d.Claim(ctx, user)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
	assert.ErrorIs(t, inner, distributor.ErrReentrantCall)

	// the lock is released once the claim returns
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.UintZero(), nil)
	_, err = d.Claim(ctx, user)
	require.NoError(t, err)
}

var errTransfer = errors.New("transfer failed")

func testClaimTransferFails(t *testing.T) {
	d := getTestDistributor(t)
	ctx := context.Background()
	expectRecipientSharesEvent(t, d.broker, user, num.NewUint(4), num.NewUint(4))
	require.NoError(t, d.EditRecipient(ctx, admin, user, num.NewUint(4)))

	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.NewUint(100), nil)
	d.asset.EXPECT().Transfer(gomock.Any(), distributorAddr, user, num.NewUint(100)).Times(1).Return(errTransfer)
	_, err := d.Claim(ctx, user)
	assert.ErrorIs(t, err, errTransfer)
	assert.Equal(t, "100", d.Recipient(user).Credit.String())

	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.UintZero(), nil)
	d.asset.EXPECT().Transfer(gomock.Any(), distributorAddr, user, num.NewUint(100)).Times(1).Return(nil)
	d.broker.EXPECT().Send(gomock.Any()).Times(1)
	amount, err := d.Claim(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "100", amount.String())
	assert.True(t, d.Recipient(user).Credit.IsZero())
}

func testEditSettlesCredit(t *testing.T) {
	d := getTestDistributor(t)
	ctx := context.Background()
	d.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	require.NoError(t, d.EditRecipients(ctx, admin,
		[]types.Address{rec1, rec2},
		[]*num.Uint{num.NewUint(1), num.NewUint(1)},
	))

	// 200 pulled while shares are 1:1, then rec1 goes to 3
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.NewUint(200), nil)
	require.NoError(t, d.EditRecipient(ctx, admin, rec1, num.NewUint(3)))
	assert.Equal(t, "100", d.Recipient(rec1).Credit.String())
	assert.Equal(t, "100", d.Pending(rec2).String())

	// 400 pulled at 3:1
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.NewUint(400), nil)
	d.asset.EXPECT().Transfer(gomock.Any(), distributorAddr, rec1, num.NewUint(400)).Times(1).Return(nil)
	amount, err := d.Claim(ctx, rec1)
	require.NoError(t, err)
	assert.Equal(t, "400", amount.String())
	assert.Equal(t, "200", d.Pending(rec2).String())
}

func TestVestingUpstream(t *testing.T) {
	vestingBegin := time.Unix(1690934400, 0)
	vestingEnd := vestingBegin.Add(2 * 365 * 24 * time.Hour)
	vestingCliff := vestingBegin.Add(3 * 30 * 24 * time.Hour)
	vestingAmount := num.MustParseUnits("12000000", 18)

	e := newEnv(t, vestingBegin.Add(-24*time.Hour))
	require.NoError(t, e.token.Mint(e.ctx, admin, vestingAmount))

	vesterAddr := types.HexToAddress("0x7000000000000000000000000000000000000004")
	vester, err := vesting.NewCliffVester(logging.NewTestLogger(), vesting.NewDefaultConfig(), e.bus, e.ts, e.token,
		vesterAddr, admin, vestingAmount, vestingBegin, vestingEnd, vestingCliff)
	require.NoError(t, err)
	require.NoError(t, e.token.Transfer(e.ctx, admin, vesterAddr, vestingAmount))

	d := e.distributor(t, vester)
	require.NoError(t, vester.SetRecipient(e.ctx, admin, d.Address()))

	recipients := map[types.Address]string{
		rec1: "250",
		rec2: "4500",
		types.HexToAddress("0xA07f2E459773733b15A1eB95Be7530EE6DaDb515"): "250",
		types.HexToAddress("0x87Cd8B143992D6BBaFb4701E8c463dF59D787568"): "500",
		types.HexToAddress("0x969F2e54B4Aa4654F7c2f75Cbbd2d56910A1d371"): "4500",
		types.HexToAddress("0xB58Ee267704ec4529e1B1f17B81Db73279DC4821"): "2000",
	}
	for acc, share := range recipients {
		require.NoError(t, d.EditRecipient(e.ctx, admin, acc, num.MustParseUnits(share, 18)))
	}
	multisig := types.HexToAddress("0x784B82a27029C9E114b521abcC39D02B3D1DEAf2")
	require.NoError(t, d.SetAdmin(e.ctx, admin, multisig))
	assert.Equal(t, num.MustParseUnits("12000", 18).String(), d.TotalShares().String())

	claim := func(acc types.Address) *num.Uint {
		t.Helper()
		_, err := d.Claim(e.ctx, acc)
		require.NoError(t, err)
		return e.token.BalanceOf(acc)
	}

	// nothing before vesting begins
	assert.True(t, claim(rec1).IsZero())

	// nothing before the cliff
	e.clock.Advance(24 * time.Hour)
	assert.True(t, claim(rec1).IsZero())

	// something at the cliff
	e.clock.Advance(vestingCliff.Sub(vestingBegin))
	atCliff := claim(rec1)
	assert.False(t, atCliff.IsZero())

	// everything at the end, within rounding
	e.clock.Advance(vestingEnd.Sub(vestingCliff))
	tolerance := num.NewUint(1000)
	for _, acc := range []types.Address{rec1, rec2} {
		got := claim(acc)
		expected := num.UintZero().Mul(vestingAmount, num.MustParseUnits(recipients[acc], 18))
		expected.Div(expected, d.TotalShares())
		assert.True(t, got.LTE(expected), "%s received more than its share", acc)
		assert.True(t, num.UintZero().Sub(expected, got).LT(tolerance), "%s: got %s, expected %s", acc, got, expected)
	}

	// the vester is empty
	assert.True(t, e.token.BalanceOf(vesterAddr).IsZero())
	assert.True(t, vester.Withdrawn().EQ(vestingAmount))
}

func TestDistributorSnapshotRoundTrip(t *testing.T) {
	d := getTestDistributor(t)
	ctx := context.Background()
	d.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	require.NoError(t, d.EditRecipients(ctx, admin,
		[]types.Address{rec1, rec2},
		[]*num.Uint{num.NewUint(1), num.NewUint(3)},
	))
	d.claimable.EXPECT().Claim(gomock.Any()).Times(1).Return(num.NewUint(400), nil)
	require.NoError(t, d.EditRecipient(ctx, admin, rec2, num.NewUint(1)))

	payload, err := d.GetState(d.Keys()[0])
	require.NoError(t, err)

	restored := getTestDistributor(t)
	require.NoError(t, restored.LoadState(ctx, d.Keys()[0], payload))
	assert.Equal(t, d.TotalShares(), restored.TotalShares())
	assert.Equal(t, d.ShareIndex(), restored.ShareIndex())
	assert.Equal(t, d.Recipient(rec2), restored.Recipient(rec2))
	assert.Equal(t, "100", restored.Pending(rec1).String())
	assert.Equal(t, "300", restored.Pending(rec2).String())

	again, err := restored.GetState(restored.Keys()[0])
	require.NoError(t, err)
	assert.Equal(t, payload, again)
}
