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
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mendi-finance/launch/core/snapshot/databases"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/logging"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const keySeparator = "."

// Engine saves the state of every registered provider into a key value
// store and loads it back. Payloads are stored under "namespace.key".
type Engine struct {
	log *logging.Logger
	cfg Config
	db  databases.Database

	// namespace -> key -> provider
	providers map[types.SnapshotNamespace]map[string]types.StateProvider
}

func New(log *logging.Logger, cfg Config) (*Engine, error) {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var db databases.Database
	switch cfg.Storage {
	case memDB:
		db = databases.NewInMemoryDatabase()
	case goLevelDB:
		levelDB, err := databases.NewLevelDBDatabase(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("could not open the snapshot database: %w", err)
		}
		db = levelDB
	}

	return &Engine{
		log:       log,
		cfg:       cfg,
		db:        db,
		providers: map[types.SnapshotNamespace]map[string]types.StateProvider{},
	}, nil
}

// ReloadConf updates the log level, storage changes need a restart.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.cfg.Level = cfg.Level
}

// AddProviders registers providers. A namespace and key pair can only be
// registered once.
func (e *Engine) AddProviders(provs ...types.StateProvider) error {
	for _, p := range provs {
		ns := p.Namespace()
		if !isKnownNamespace(ns) {
			return fmt.Errorf("%s: %w", ns, types.ErrUnknownSnapshotNamespace)
		}
		for _, k := range p.Keys() {
			if strings.Contains(k, keySeparator) {
				return fmt.Errorf("key %q: %w", k, types.ErrInvalidSnapshotNamespace)
			}
			if _, ok := e.providers[ns][k]; ok {
				return fmt.Errorf("%s%s%s: %w", ns, keySeparator, k, types.ErrSnapshotProviderDuplicate)
			}
		}
		if _, ok := e.providers[ns]; !ok {
			e.providers[ns] = map[string]types.StateProvider{}
		}
		for _, k := range p.Keys() {
			e.providers[ns][k] = p
		}
	}
	return nil
}

// Snapshot writes the state of every provider in one batch and returns the
// number of payloads written.
func (e *Engine) Snapshot(ctx context.Context) (int, error) {
	batch := e.db.NewBatch()
	defer batch.Close()

	count := 0
	for _, ns := range providersInCallOrder {
		provs := e.providers[ns]
		keys := maps.Keys(provs)
		slices.Sort(keys)
		for _, k := range keys {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			data, err := provs[k].GetState(k)
			if err != nil {
				return 0, fmt.Errorf("could not get state for %s%s%s: %w", ns, keySeparator, k, err)
			}
			if err := batch.Set(dbKey(ns, k), data); err != nil {
				return 0, err
			}
			count++
		}
	}

	if err := batch.WriteSync(); err != nil {
		return 0, fmt.Errorf("could not write the snapshot: %w", err)
	}
	e.log.Info("snapshot taken", logging.Int("payloads", count))
	return count, nil
}

// Restore loads every stored payload into its provider, namespace by
// namespace, and returns the number of payloads loaded. Stored payloads
// without a registered provider are an error.
func (e *Engine) Restore(ctx context.Context) (int, error) {
	payloads, err := e.load()
	if err != nil {
		return 0, err
	}
	if len(payloads) == 0 {
		e.log.Info("no snapshot to restore")
		return 0, nil
	}

	perNamespace := groupPayloadsPerNamespace(payloads)
	count := 0
	for _, ns := range providersInCallOrder {
		for _, p := range perNamespace[ns] {
			prov, ok := e.providers[ns][p.key]
			if !ok {
				return count, fmt.Errorf("no provider for %s%s%s: %w", ns, keySeparator, p.key, types.ErrSnapshotKeyDoesNotExist)
			}
			if err := prov.LoadState(ctx, p.key, p.data); err != nil {
				return count, fmt.Errorf("could not load state for %s%s%s: %w", ns, keySeparator, p.key, err)
			}
			count++
		}
	}

	e.log.Info("snapshot restored", logging.Int("payloads", count))
	return count, nil
}

func (e *Engine) load() ([]payload, error) {
	it, err := e.db.Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	payloads := []payload{}
	for ; it.Valid(); it.Next() {
		ns, k, ok := strings.Cut(string(it.Key()), keySeparator)
		if !ok || !isKnownNamespace(types.SnapshotNamespace(ns)) {
			return nil, fmt.Errorf("stored key %q: %w", it.Key(), types.ErrUnknownSnapshotNamespace)
		}
		payloads = append(payloads, payload{
			namespace: types.SnapshotNamespace(ns),
			key:       k,
			data:      bytes.Clone(it.Value()),
		})
	}
	return payloads, it.Error()
}

// HasSnapshot returns true when the store holds at least one payload.
func (e *Engine) HasSnapshot() (bool, error) {
	it, err := e.db.Iterator(nil, nil)
	if err != nil {
		return false, err
	}
	defer it.Close()
	return it.Valid(), nil
}

// ClearAndInitialise wipes the store.
func (e *Engine) ClearAndInitialise() error {
	return e.db.Clear()
}

func (e *Engine) Close() error {
	return e.db.Close()
}

func dbKey(ns types.SnapshotNamespace, k string) []byte {
	return []byte(ns.String() + keySeparator + k)
}
