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

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mendi-finance/launch/libs/num"
	"github.com/mendi-finance/launch/logging"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Gauge instrument = iota
	Counter
	Histogram
)

var (
	// ErrInstrumentNotSupported signals the specified instrument is not yet supported
	ErrInstrumentNotSupported = errors.New("instrument type unsupported")
	// ErrInstrumentTypeMismatch signal the type of the instrument is not expected
	ErrInstrumentTypeMismatch = errors.New("instrument is not of the expected type")
)

// amounts are in whole tokens, deposit tokens usually have 6 decimals.
var depositBuckets = []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000}

var (
	eventCounter          *prometheus.CounterVec
	depositCounter        *prometheus.CounterVec
	depositedAmount       *prometheus.CounterVec
	depositSize           *prometheus.HistogramVec
	finalizedAmount       *prometheus.GaugeVec
	deliveredAmount       *prometheus.GaugeVec
	claimCounter          *prometheus.CounterVec
	claimedAmount         *prometheus.CounterVec
	finalizeCounter       *prometheus.CounterVec
	vestingReleaseCounter *prometheus.CounterVec
	vestingReleasedAmount *prometheus.CounterVec
	loyaltyMintCounter    *prometheus.CounterVec

	setupOnce sync.Once
	setupErr  error
)

type instrument int

type instrumentOpts struct {
	opts    prometheus.Opts
	buckets []float64
	vectors []string
}

type mi struct {
	gaugeV     *prometheus.GaugeVec
	gauge      prometheus.Gauge
	counterV   *prometheus.CounterVec
	counter    prometheus.Counter
	histogramV *prometheus.HistogramVec
	histogram  prometheus.Histogram
}

// InstrumentOption - vararg for instrument options setting
type InstrumentOption func(o *instrumentOpts)

// Vectors - configuration used to create a vector of a given interface, slice of label names
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

// Help - set the help field on instrument
func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

// Namespace - set namespace
func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Buckets - specific to histogram type
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// AddInstrument configures and registers a new instrument on the default
// registry.
func AddInstrument(t instrument, name string, opts ...InstrumentOption) (*mi, error) {
	var col prometheus.Collector
	ret := mi{}
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	for _, o := range opts {
		o(&opt)
	}
	switch t {
	case Gauge:
		o := prometheus.GaugeOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.gauge = prometheus.NewGauge(o)
			col = ret.gauge
		} else {
			ret.gaugeV = prometheus.NewGaugeVec(o, opt.vectors)
			col = ret.gaugeV
		}
	case Counter:
		o := prometheus.CounterOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.counter = prometheus.NewCounter(o)
			col = ret.counter
		} else {
			ret.counterV = prometheus.NewCounterVec(o, opt.vectors)
			col = ret.counterV
		}
	case Histogram:
		o := opt.histogram()
		if len(opt.vectors) == 0 {
			ret.histogram = prometheus.NewHistogram(o)
			col = ret.histogram
		} else {
			ret.histogramV = prometheus.NewHistogramVec(o, opt.vectors)
			col = ret.histogramV
		}
	default:
		return nil, ErrInstrumentNotSupported
	}
	if err := prometheus.Register(col); err != nil {
		return nil, err
	}
	return &ret, nil
}

// Setup registers the instruments with the default registry. It only does
// the work once.
func Setup() error {
	setupOnce.Do(func() {
		setupErr = setupMetrics()
	})
	return setupErr
}

// Start exposes the metrics over HTTP when enabled. The server stops with
// the context.
func Start(ctx context.Context, log *logging.Logger, conf Config) error {
	if !conf.Enabled {
		return nil
	}
	if err := Setup(); err != nil {
		return errors.Wrap(err, "could not set up metrics")
	}

	mux := http.NewServeMux()
	mux.Handle(conf.Path, promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return nil
}

func (i instrumentOpts) histogram() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Name:      i.opts.Name,
		Namespace: i.opts.Namespace,
		Help:      i.opts.Help,
		Buckets:   i.buckets,
	}
}

// Gauge returns a prometheus Gauge instrument
func (m mi) Gauge() (prometheus.Gauge, error) {
	if m.gauge == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gauge, nil
}

func (m mi) GaugeVec() (*prometheus.GaugeVec, error) {
	if m.gaugeV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gaugeV, nil
}

func (m mi) Counter() (prometheus.Counter, error) {
	if m.counter == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counter, nil
}

func (m mi) CounterVec() (*prometheus.CounterVec, error) {
	if m.counterV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counterV, nil
}

func (m mi) HistogramVec() (*prometheus.HistogramVec, error) {
	if m.histogramV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.histogramV, nil
}

func addCounterVec(name, help string, labels ...string) (*prometheus.CounterVec, error) {
	h, err := AddInstrument(
		Counter,
		name,
		Namespace("mendi"),
		Vectors(labels...),
		Help(help),
	)
	if err != nil {
		return nil, err
	}
	return h.CounterVec()
}

func setupMetrics() error {
	var err error
	if eventCounter, err = addCounterVec("events_total", "Number of events sent on the broker", "type"); err != nil {
		return err
	}

	// liquidity generation
	if depositCounter, err = addCounterVec("deposits_total", "Number of deposits", "coordinator", "bonus"); err != nil {
		return err
	}
	if depositedAmount, err = addCounterVec("deposited_amount_total", "Deposited amount in base units", "coordinator"); err != nil {
		return err
	}
	if finalizeCounter, err = addCounterVec("finalizations_total", "Number of finalized events", "coordinator"); err != nil {
		return err
	}
	h, err := AddInstrument(
		Histogram,
		"deposit_size",
		Namespace("mendi"),
		Vectors("coordinator"),
		Buckets(depositBuckets),
		Help("Deposit size in whole deposit tokens"),
	)
	if err != nil {
		return err
	}
	if depositSize, err = h.HistogramVec(); err != nil {
		return err
	}
	g, err := AddInstrument(
		Gauge,
		"finalized_amount",
		Namespace("mendi"),
		Vectors("coordinator"),
		Help("Amount moved to the reserves manager on finalize, in base units"),
	)
	if err != nil {
		return err
	}
	if finalizedAmount, err = g.GaugeVec(); err != nil {
		return err
	}
	g, err = AddInstrument(
		Gauge,
		"delivered_amount",
		Namespace("mendi"),
		Vectors("coordinator"),
		Help("Launch tokens delivered to the reserves manager, in base units"),
	)
	if err != nil {
		return err
	}
	if deliveredAmount, err = g.GaugeVec(); err != nil {
		return err
	}

	// distribution
	if claimCounter, err = addCounterVec("claims_total", "Number of distributor claims", "distributor"); err != nil {
		return err
	}
	if claimedAmount, err = addCounterVec("claimed_amount_total", "Claimed amount in base units", "distributor"); err != nil {
		return err
	}
	if vestingReleaseCounter, err = addCounterVec("vesting_releases_total", "Number of vesting releases", "vester"); err != nil {
		return err
	}
	if vestingReleasedAmount, err = addCounterVec("vesting_released_amount_total", "Released amount in base units", "vester"); err != nil {
		return err
	}

	if loyaltyMintCounter, err = addCounterVec("loyalty_mints_total", "Number of loyalty point mints", "token"); err != nil {
		return err
	}
	return nil
}

func amountFloat(u *num.Uint) float64 {
	f, _ := num.DecimalFromUint(u).Float64()
	return f
}

func EventCounterInc(labelValues ...string) {
	if eventCounter == nil {
		return
	}
	eventCounter.WithLabelValues(labelValues...).Inc()
}

// DepositAdd records a deposit. decimals is the deposit token precision,
// used to bucket the deposit size in whole tokens.
func DepositAdd(coordinator string, bonus bool, amount *num.Uint, decimals uint8) {
	if depositCounter == nil || depositedAmount == nil || depositSize == nil {
		return
	}
	depositCounter.WithLabelValues(coordinator, strconv.FormatBool(bonus)).Inc()
	depositedAmount.WithLabelValues(coordinator).Add(amountFloat(amount))
	whole, _ := num.DecimalFromUint(amount).Shift(-int32(decimals)).Float64()
	depositSize.WithLabelValues(coordinator).Observe(whole)
}

func FinalizeSet(coordinator string, amount *num.Uint) {
	if finalizeCounter == nil || finalizedAmount == nil {
		return
	}
	finalizeCounter.WithLabelValues(coordinator).Inc()
	finalizedAmount.WithLabelValues(coordinator).Set(amountFloat(amount))
}

func DeliveredAdd(coordinator string, amount *num.Uint) {
	if deliveredAmount == nil {
		return
	}
	deliveredAmount.WithLabelValues(coordinator).Add(amountFloat(amount))
}

func ClaimAdd(distributor string, amount *num.Uint) {
	if claimCounter == nil || claimedAmount == nil {
		return
	}
	claimCounter.WithLabelValues(distributor).Inc()
	claimedAmount.WithLabelValues(distributor).Add(amountFloat(amount))
}

func VestingReleaseAdd(vester string, amount *num.Uint) {
	if vestingReleaseCounter == nil || vestingReleasedAmount == nil {
		return
	}
	vestingReleaseCounter.WithLabelValues(vester).Inc()
	vestingReleasedAmount.WithLabelValues(vester).Add(amountFloat(amount))
}

func LoyaltyMintInc(token string) {
	if loyaltyMintCounter == nil {
		return
	}
	loyaltyMintCounter.WithLabelValues(token).Inc()
}
