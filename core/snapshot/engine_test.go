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

package snapshot_test

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mendi-finance/launch/core/snapshot"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownProvider struct{}

func (unknownProvider) Namespace() types.SnapshotNamespace { return "unknown" }
func (unknownProvider) Keys() []string                     { return []string{"k"} }
func (unknownProvider) GetState(string) ([]byte, error)    { return nil, nil }

func (unknownProvider) LoadState(context.Context, string, []byte) error {
	return nil
}

func getTestEngine(t *testing.T, cfg snapshot.Config) *snapshot.Engine {
	t.Helper()
	eng, err := snapshot.New(logging.NewTestLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = eng.Close()
	})
	return eng
}

func TestEngine(t *testing.T) {
	t.Run("State round trips through the in-memory store", testRoundTripInMemory)
	t.Run("State survives reopening the LevelDB store", testRoundTripLevelDB)
	t.Run("Restoring an empty store loads nothing", testRestoreEmpty)
	t.Run("Providers cannot be registered twice", testDuplicateProvider)
	t.Run("Unknown namespaces are rejected", testUnknownNamespace)
	t.Run("Stored payload without provider fails the restore", testMissingProvider)
	t.Run("Clearing the store drops every payload", testClear)
}

func testRoundTripInMemory(t *testing.T) {
	ctx := context.Background()
	eng := getTestEngine(t, snapshot.NewTestConfig())

	tk := populatedTokens(t)
	expected := populatedTokens(t)
	require.NoError(t, eng.AddProviders(tk.providers()...))
	n, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// changes after the snapshot are rolled back by the restore
	require.NoError(t, tk.mendi.Transfer(ctx, bob, alice, num.MustParseUnits("250", 18)))
	require.NoError(t, tk.usdc.Mint(ctx, alice, num.MustParseUnits("1", 6)))

	n, err = eng.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	requireSameTokens(t, expected, tk)
}

func testRoundTripLevelDB(t *testing.T) {
	ctx := context.Background()
	cfg := snapshot.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "snapshots")
	require.NoError(t, os.Mkdir(cfg.DBPath, 0o700))
	require.NoError(t, os.Chmod(cfg.DBPath, 0o755))

	tk := populatedTokens(t)
	eng, err := snapshot.New(logging.NewTestLogger(), cfg)
	require.NoError(t, err)
	// an existing database directory is restricted to the owner
	stat, err := os.Stat(cfg.DBPath)
	require.NoError(t, err)
	assert.Equal(t, iofs.FileMode(0o700), stat.Mode().Perm())
	require.NoError(t, eng.AddProviders(tk.providers()...))
	n, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, eng.Close())

	fresh := newTokens(t)
	restorer := getTestEngine(t, cfg)
	has, err := restorer.HasSnapshot()
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, restorer.AddProviders(fresh.providers()...))
	n, err = restorer.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	requireSameTokens(t, tk, fresh)
}

func testRestoreEmpty(t *testing.T) {
	eng := getTestEngine(t, snapshot.NewTestConfig())
	require.NoError(t, eng.AddProviders(newTokens(t).providers()...))

	has, err := eng.HasSnapshot()
	require.NoError(t, err)
	assert.False(t, has)

	n, err := eng.Restore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testDuplicateProvider(t *testing.T) {
	eng := getTestEngine(t, snapshot.NewTestConfig())
	tk := newTokens(t)
	require.NoError(t, eng.AddProviders(tk.mendi))
	assert.ErrorIs(t, eng.AddProviders(tk.mendi), types.ErrSnapshotProviderDuplicate)
}

func testUnknownNamespace(t *testing.T) {
	eng := getTestEngine(t, snapshot.NewTestConfig())
	assert.ErrorIs(t, eng.AddProviders(unknownProvider{}), types.ErrUnknownSnapshotNamespace)
}

func testMissingProvider(t *testing.T) {
	ctx := context.Background()
	cfg := snapshot.NewDefaultConfig()
	cfg.DBPath = t.TempDir()

	eng, err := snapshot.New(logging.NewTestLogger(), cfg)
	require.NoError(t, err)
	require.NoError(t, eng.AddProviders(populatedTokens(t).providers()...))
	_, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	// only one of the two tokens is registered on restore
	restorer := getTestEngine(t, cfg)
	require.NoError(t, restorer.AddProviders(newTokens(t).mendi))
	_, err = restorer.Restore(ctx)
	assert.ErrorIs(t, err, types.ErrSnapshotKeyDoesNotExist)
}

func testClear(t *testing.T) {
	ctx := context.Background()
	cfg := snapshot.NewDefaultConfig()
	cfg.DBPath = t.TempDir()

	eng := getTestEngine(t, cfg)
	require.NoError(t, eng.AddProviders(populatedTokens(t).providers()...))
	_, err := eng.Snapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, eng.ClearAndInitialise())
	has, err := eng.HasSnapshot()
	require.NoError(t, err)
	assert.False(t, has)
}
