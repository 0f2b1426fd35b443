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
	"errors"
	"fmt"
	"time"

	"github.com/mendi-finance/launch/config/encoding"
	"github.com/mendi-finance/launch/core/distributor"
	"github.com/mendi-finance/launch/core/lge"
	vgerrors "github.com/mendi-finance/launch/core/libs/errors"
	"github.com/mendi-finance/launch/core/loyalty"
	"github.com/mendi-finance/launch/core/token"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/core/vesting"
	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"
)

const namedLogger = "deploy"

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// Config holds the launch parameters. Amounts are decimal strings of whole
// launch tokens, times are unix seconds.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	LiquidityAmount    string            `description:"Launch tokens handed to the coordinator"      long:"liquidity-amount"`
	VestingAmount      string            `description:"Launch tokens vested to depositors"           long:"vesting-amount"`
	BonusVestingAmount string            `description:"Launch tokens vested to bonus depositors"     long:"bonus-vesting-amount"`
	InitialUnlockBps   uint64            `description:"Share of the vesting unlocked at its begin"   long:"initial-unlock-bps"`
	PeriodBegin        int64             `description:"Begin of the deposit period (unix seconds)"   long:"period-begin"`
	PeriodDuration     encoding.Duration `description:"Length of the deposit period"                 long:"period-duration"`
	BonusDuration      encoding.Duration `description:"Length of the bonus period"                   long:"bonus-duration"`
	VestingBegin       int64             `description:"Begin of the vesting (unix seconds)"          long:"vesting-begin"`
	VestingDuration    encoding.Duration `description:"Length of the vesting"                        long:"vesting-duration"`
}

// Engines holds the configuration of every contract the deployer creates.
type Engines struct {
	Token       token.Config
	Vesting     vesting.Config
	Distributor distributor.Config
	LGE         lge.Config
	Loyalty     loyalty.Config
}

func NewDefaultEngines() Engines {
	return Engines{
		Token:       token.NewDefaultConfig(),
		Vesting:     vesting.NewDefaultConfig(),
		Distributor: distributor.NewDefaultConfig(),
		LGE:         lge.NewDefaultConfig(),
		Loyalty:     loyalty.NewDefaultConfig(),
	}
}

func NewDefaultConfig() Config {
	return Config{
		Level:              encoding.LogLevel{Level: logging.InfoLevel},
		LiquidityAmount:    "2500000",
		VestingAmount:      "3200000",
		BonusVestingAmount: "300000",
		InitialUnlockBps:   5000,
		PeriodBegin:        1689674400,
		PeriodDuration:     encoding.Duration{Duration: 3 * 24 * time.Hour},
		BonusDuration:      encoding.Duration{Duration: 24 * time.Hour},
		VestingBegin:       1689944400,
		VestingDuration:    encoding.Duration{Duration: 365 * 24 * time.Hour},
	}
}

// Params are the validated launch parameters in base units.
type Params struct {
	LiquidityAmount    *num.Uint
	VestingAmount      *num.Uint
	BonusVestingAmount *num.Uint
	InitialUnlockBps   uint64
	PeriodBegin        time.Time
	PeriodDuration     time.Duration
	BonusDuration      time.Duration
	VestingBegin       time.Time
	VestingEnd         time.Time
}

func parseAmount(errs *vgerrors.CumulatedErrors, name, s string, decimals uint8) *num.Uint {
	u, err := num.ParseUnits(s, decimals)
	if err != nil {
		errs.Add(fmt.Errorf("%s %q: %v: %w", name, s, err, ErrInvalidAmount))
		return nil
	}
	if u.IsZero() {
		errs.Add(fmt.Errorf("%s must be positive: %w", name, ErrInvalidAmount))
	}
	return u
}

// Params parses and validates the configuration for a launch token with the
// given decimals. Every problem is reported at once.
func (c Config) Params(decimals uint8) (Params, error) {
	errs := vgerrors.NewCumulatedErrors()
	p := Params{
		LiquidityAmount:    parseAmount(errs, "liquidity amount", c.LiquidityAmount, decimals),
		VestingAmount:      parseAmount(errs, "vesting amount", c.VestingAmount, decimals),
		BonusVestingAmount: parseAmount(errs, "bonus vesting amount", c.BonusVestingAmount, decimals),
		InitialUnlockBps:   c.InitialUnlockBps,
		PeriodBegin:        time.Unix(c.PeriodBegin, 0),
		PeriodDuration:     c.PeriodDuration.Get(),
		BonusDuration:      c.BonusDuration.Get(),
		VestingBegin:       time.Unix(c.VestingBegin, 0),
	}
	p.VestingEnd = p.VestingBegin.Add(c.VestingDuration.Get())

	if c.InitialUnlockBps > types.MaxBasisPoints {
		errs.Add(fmt.Errorf("initial unlock of %d basis points: %w", c.InitialUnlockBps, ErrInvalidSchedule))
	}
	if p.PeriodDuration <= 0 {
		errs.Add(fmt.Errorf("period duration must be positive: %w", ErrInvalidSchedule))
	}
	if p.BonusDuration < 0 || p.BonusDuration > p.PeriodDuration {
		errs.Add(fmt.Errorf("bonus duration must be within the period: %w", ErrInvalidSchedule))
	}
	if c.VestingDuration.Get() <= 0 {
		errs.Add(fmt.Errorf("vesting duration must be positive: %w", ErrInvalidSchedule))
	}
	if p.VestingBegin.Before(p.PeriodBegin.Add(p.PeriodDuration)) {
		errs.Add(fmt.Errorf("vesting must begin after the deposit period: %w", ErrInvalidSchedule))
	}
	return p, errs.ErrorOrNil()
}

// Total returns the launch tokens the deployment hands out.
func (p Params) Total() *num.Uint {
	return num.Sum(p.LiquidityAmount, p.VestingAmount, p.BonusVestingAmount)
}
