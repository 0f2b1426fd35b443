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

package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	Name     = "Mendi Loyalty Point"
	Symbol   = "MLP"
	Decimals = 18
)

var (
	// DefaultAdminRole administers every role, including itself.
	DefaultAdminRole = common.Hash{}
	MintSignerRole   = crypto.Keccak256Hash([]byte("MINT_SIGNER_ROLE"))
)

var (
	ErrNotPermitted     = errors.New("not permitted")
	ErrMissingRole      = errors.New("account is missing role")
	ErrBadConfirmation  = errors.New("can only renounce roles for self")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Point is the loyalty point token. Points are only minted against a permit
// signed by an account holding MintSignerRole.
type Point struct {
	log    *logging.Logger
	cfg    Config
	broker Broker

	address types.Address
	token   *token.Token
	// role -> members
	roles map[common.Hash]map[types.Address]struct{}
}

// New creates the token with admin holding DefaultAdminRole.
func New(
	ctx context.Context,
	log *logging.Logger,
	cfg Config,
	broker Broker,
	address, admin types.Address,
) (*Point, error) {
	if types.IsZeroAddress(admin) {
		return nil, ErrInvalidAddress
	}

	log = log.Named(namedLogger).With(logging.Address("token", address))
	log.SetLevel(cfg.Level.Get())

	p := &Point{
		log:     log,
		cfg:     cfg,
		broker:  broker,
		address: address,
		token:   token.New(log, token.NewDefaultConfig(), broker, address, Name, Symbol, Decimals),
		roles:   map[common.Hash]map[types.Address]struct{}{},
	}
	p.grant(ctx, DefaultAdminRole, admin, admin)
	return p, nil
}

// ReloadConf updates the internal configuration.
func (p *Point) ReloadConf(cfg Config) {
	p.log.Info("reloading configuration")
	if p.log.GetLevel() != cfg.Level.Get() {
		p.log.Info("updating log level",
			logging.String("old", p.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		p.log.SetLevel(cfg.Level.Get())
	}
	p.cfg = cfg
}

func (p *Point) Address() types.Address { return p.address }
func (p *Point) TotalSupply() *num.Uint { return p.token.TotalSupply() }

func (p *Point) BalanceOf(account types.Address) *num.Uint {
	return p.token.BalanceOf(account)
}

func (p *Point) Transfer(ctx context.Context, from, to types.Address, amount *num.Uint) error {
	return p.token.Transfer(ctx, from, to, amount)
}

// RoleAdmin returns the role allowed to grant and revoke role.
func (p *Point) RoleAdmin(_ common.Hash) common.Hash {
	return DefaultAdminRole
}

func (p *Point) HasRole(role common.Hash, account types.Address) bool {
	_, ok := p.roles[role][account]
	return ok
}

// Members returns the accounts holding role, sorted.
func (p *Point) Members(role common.Hash) []types.Address {
	members := maps.Keys(p.roles[role])
	slices.SortFunc(members, func(a, b types.Address) int {
		return a.Cmp(b)
	})
	return members
}

func (p *Point) checkRole(role common.Hash, account types.Address) error {
	if !p.HasRole(role, account) {
		return fmt.Errorf("account %s is missing role %s: %w", account.Hex(), role.Hex(), ErrMissingRole)
	}
	return nil
}

// GrantRole gives role to account. Granting a role already held is a no-op.
func (p *Point) GrantRole(ctx context.Context, caller types.Address, role common.Hash, account types.Address) error {
	if err := p.checkRole(p.RoleAdmin(role), caller); err != nil {
		return err
	}
	if types.IsZeroAddress(account) {
		return ErrInvalidAddress
	}
	p.grant(ctx, role, account, caller)
	return nil
}

// RevokeRole removes role from account. Revoking a role not held is a no-op.
func (p *Point) RevokeRole(ctx context.Context, caller types.Address, role common.Hash, account types.Address) error {
	if err := p.checkRole(p.RoleAdmin(role), caller); err != nil {
		return err
	}
	p.revoke(ctx, role, account, caller)
	return nil
}

// RenounceRole lets an account drop one of its own roles.
func (p *Point) RenounceRole(ctx context.Context, caller types.Address, role common.Hash, account types.Address) error {
	if caller != account {
		return ErrBadConfirmation
	}
	p.revoke(ctx, role, account, caller)
	return nil
}

func (p *Point) grant(ctx context.Context, role common.Hash, account, sender types.Address) {
	if p.HasRole(role, account) {
		return
	}
	if _, ok := p.roles[role]; !ok {
		p.roles[role] = map[types.Address]struct{}{}
	}
	p.roles[role][account] = struct{}{}

	p.log.Info("role granted",
		logging.String("role", role.Hex()),
		logging.Address("account", account),
		logging.Address("sender", sender),
	)
	p.broker.Send(events.NewRole(ctx, p.address, role, account, sender, true))
}

func (p *Point) revoke(ctx context.Context, role common.Hash, account, sender types.Address) {
	if !p.HasRole(role, account) {
		return
	}
	delete(p.roles[role], account)
	if len(p.roles[role]) == 0 {
		delete(p.roles, role)
	}

	p.log.Info("role revoked",
		logging.String("role", role.Hex()),
		logging.Address("account", account),
		logging.Address("sender", sender),
	)
	p.broker.Send(events.NewRole(ctx, p.address, role, account, sender, false))
}

// MintWithPermit mints amount to the given account when signature is a
// permit for (to, amount) signed by a holder of MintSignerRole. Anyone can
// submit the permit.
func (p *Point) MintWithPermit(ctx context.Context, caller, to types.Address, amount *num.Uint, signature []byte) error {
	digest, err := HashPermit(to, amount)
	if err != nil {
		return err
	}
	signer, err := RecoverPermitSigner(digest, signature)
	if err != nil || !p.HasRole(MintSignerRole, signer) {
		p.log.Debug("rejected permit",
			logging.Address("caller", caller),
			logging.Address("to", to),
			logging.Uint("amount", amount),
		)
		return ErrNotPermitted
	}

	if err := p.token.Mint(ctx, to, amount); err != nil {
		return err
	}

	p.log.Debug("points minted",
		logging.Address("signer", signer),
		logging.Address("to", to),
		logging.Uint("amount", amount),
	)
	p.broker.Send(events.NewLoyaltyMint(ctx, p.address, signer, to, amount))
	return nil
}
