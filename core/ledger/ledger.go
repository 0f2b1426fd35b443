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

// Package ledger keeps the share of every participant of a distribution.
// The total always equals the sum of the individual shares.
package ledger

import (
	"errors"

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrInvalidAddress = errors.New("invalid address")
	ErrShareOverflow  = errors.New("total shares overflow")
)

// Entry is the share held by a single account.
type Entry struct {
	Account types.Address `json:"account"`
	Shares  *num.Uint     `json:"shares"`
}

type Ledger struct {
	editor types.Address
	shares map[types.Address]*num.Uint
	total  *num.Uint
}

// New returns an empty ledger which only the editor can modify.
func New(editor types.Address) *Ledger {
	return &Ledger{
		editor: editor,
		shares: map[types.Address]*num.Uint{},
		total:  num.UintZero(),
	}
}

func (l *Ledger) Editor() types.Address {
	return l.editor
}

// SetEditor hands the ledger over to a new editor.
func (l *Ledger) SetEditor(caller, editor types.Address) error {
	if caller != l.editor {
		return ErrUnauthorized
	}
	if types.IsZeroAddress(editor) {
		return ErrInvalidAddress
	}
	l.editor = editor
	return nil
}

func (l *Ledger) Shares(account types.Address) *num.Uint {
	if s, ok := l.shares[account]; ok {
		return s.Clone()
	}
	return num.UintZero()
}

func (l *Ledger) TotalShares() *num.Uint {
	return l.total.Clone()
}

// Set replaces the share of the account.
func (l *Ledger) Set(caller, account types.Address, amount *num.Uint) error {
	return l.SetBatch(caller, []types.Address{account}, []*num.Uint{amount})
}

// SetBatch replaces the shares of every account, in order. Either every
// share is updated or none.
func (l *Ledger) SetBatch(caller types.Address, accounts []types.Address, amounts []*num.Uint) error {
	if caller != l.editor {
		return ErrUnauthorized
	}
	if len(accounts) != len(amounts) {
		return ErrLengthMismatch
	}

	// compute the resulting total first, an account can appear more than once
	next := map[types.Address]*num.Uint{}
	total := l.total.Clone()
	for i, acc := range accounts {
		prev, ok := next[acc]
		if !ok {
			prev = l.Shares(acc)
		}
		total.Sub(total, prev)
		if _, overflow := total.AddOverflow(total, amounts[i]); overflow {
			return ErrShareOverflow
		}
		next[acc] = amounts[i].Clone()
	}

	for acc, s := range next {
		l.store(acc, s)
	}
	l.total = total
	return nil
}

// Add increases the share of the account by delta.
func (l *Ledger) Add(caller, account types.Address, delta *num.Uint) error {
	if caller != l.editor {
		return ErrUnauthorized
	}
	total, overflow := num.UintZero().AddOverflow(l.total, delta)
	if overflow {
		return ErrShareOverflow
	}
	// cannot overflow as the share is part of the total
	l.store(account, num.UintZero().Add(l.Shares(account), delta))
	l.total = total
	return nil
}

func (l *Ledger) store(account types.Address, s *num.Uint) {
	if s.IsZero() {
		delete(l.shares, account)
		return
	}
	l.shares[account] = s
}

// Holders returns the accounts with a non zero share, sorted.
func (l *Ledger) Holders() []types.Address {
	holders := maps.Keys(l.shares)
	slices.SortFunc(holders, func(a, b types.Address) int {
		return a.Cmp(b)
	})
	return holders
}

// Entries returns the non zero shares sorted by account.
func (l *Ledger) Entries() []Entry {
	holders := l.Holders()
	out := make([]Entry, 0, len(holders))
	for _, h := range holders {
		out = append(out, Entry{Account: h, Shares: l.shares[h].Clone()})
	}
	return out
}

// Restore replaces the whole content of the ledger, the total is
// recomputed from the entries.
func (l *Ledger) Restore(editor types.Address, entries []Entry) error {
	shares := make(map[types.Address]*num.Uint, len(entries))
	total := num.UintZero()
	for _, e := range entries {
		if _, overflow := total.AddOverflow(total, e.Shares); overflow {
			return ErrShareOverflow
		}
		if !e.Shares.IsZero() {
			shares[e.Account] = e.Shares.Clone()
		}
	}
	l.editor = editor
	l.shares = shares
	l.total = total
	return nil
}
