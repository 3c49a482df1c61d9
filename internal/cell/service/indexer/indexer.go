// Package indexer follows the chain tip and maintains the live-cell index.
package indexer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/clock"
	"go.uber.org/zap"
)

// ErrAlreadyStarted is returned by Start on an indexer that is already running.
var ErrAlreadyStarted = errors.New("indexer already started")

// Config tunes the indexing loop. Zero durations and intervals fall back to defaults.
type Config struct {
	Network model.Network
	// RetentionWindow is how many blocks spent cells are kept for rollback. Zero disables purging.
	RetentionWindow uint64
	// PurgeInterval is how many heights the purge boundary must trail the cutoff before a purge runs.
	PurgeInterval   uint64
	PollInterval    time.Duration
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
}

func (c Config) withDefaults() Config {
	if c.PurgeInterval == 0 {
		c.PurgeInterval = defaultPurgeInterval
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.MaxRetryBackoff <= 0 {
		c.MaxRetryBackoff = defaultMaxRetryBackoff
	}
	return c
}

// Option customizes an Indexer.
type Option func(*Indexer)

// WithJournal reports applied, reverted and purged blocks to j.
func WithJournal(j Journal) Option {
	return func(s *Indexer) { s.journal = j }
}

// WithTipSignal wakes the tip poll early whenever signal fires.
func WithTipSignal(signal <-chan struct{}) Option {
	return func(s *Indexer) { s.tipSignal = signal }
}

// Indexer applies blocks in height order, rolls back forks and purges old spent cells.
// Only one Indexer may run against a store.
type Indexer struct {
	logger    *zap.Logger
	source    ChainSource
	store     Store
	metrics   Metrics
	journal   Journal
	cfg       Config
	tipSignal <-chan struct{}
	sleep     func(context.Context, time.Duration) error
	wait      func(context.Context, time.Duration, <-chan struct{}) error
	now       func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	lastErr error
}

// New builds an Indexer over source and store.
func New(source ChainSource, store Store, metrics Metrics, logger *zap.Logger, cfg Config, opts ...Option) (*Indexer, error) {
	if source == nil {
		return nil, errors.New("indexer chain source is required")
	}
	if store == nil {
		return nil, errors.New("indexer store is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	cfg = cfg.withDefaults()
	s := &Indexer{
		logger:  logger.With(zap.String("network", string(cfg.Network))),
		source:  source,
		store:   store,
		metrics: metrics,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
		wait:    clock.WaitSignal,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run indexes until ctx is canceled or a ConsistencyError makes progress impossible.
// Other failures are logged and retried with a doubling backoff.
func (s *Indexer) Run(ctx context.Context) error {
	backoff := clock.NewBackoff(s.cfg.RetryBackoff, s.cfg.MaxRetryBackoff)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := s.run(ctx)
		if err == nil {
			backoff.Reset()
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var consistency *model.ConsistencyError
		if errors.As(err, &consistency) {
			s.logger.Error("index is inconsistent with the chain, stopping", zap.Error(err))
			return err
		}
		d := backoff.Next()
		s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", d))
		if sleepErr := s.sleep(ctx, d); sleepErr != nil {
			return sleepErr
		}
	}
}

// Start runs the loop on its own goroutine and returns immediately.
func (s *Indexer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		err := s.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}(s.done)
	return nil
}

// Stop cancels a started loop and waits for it to exit.
func (s *Indexer) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when a started loop exits. It is nil before Start.
func (s *Indexer) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Err returns why a started loop exited. Cancellation through Stop is not an error.
func (s *Indexer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// run performs one FETCH, REORG-CHECK, APPLY, PURGE iteration.
func (s *Indexer) run(ctx context.Context) error {
	last, ok, err := s.number(ctx, model.KeyLastProcessedNumber)
	if err != nil {
		return err
	}
	var height uint64
	if ok {
		height = last + 1
	}

	started := time.Now()
	block, err := s.source.GetBlockByNumber(ctx, height)
	s.metrics.ObserveFetch(err, started)
	if err != nil {
		return model.Transient("get block by number", err)
	}
	if block == nil {
		s.logger.Debug("tip reached; waiting", zap.Uint64("height", height), zap.Duration("sleep", s.cfg.PollInterval))
		return s.wait(ctx, s.cfg.PollInterval, s.tipSignal)
	}

	if height > 0 {
		reverted, err := s.checkReorg(ctx, height, block)
		if err != nil || reverted {
			return err
		}
	}

	if err := s.apply(ctx, height, block); err != nil {
		return err
	}
	return s.purge(ctx, height)
}

// number reads a height scalar. ok is false when the key is absent.
func (s *Indexer) number(ctx context.Context, key string) (uint64, bool, error) {
	raw, ok, err := s.store.GetScalar(ctx, key)
	if err != nil {
		return 0, false, model.Transient("get "+key, err)
	}
	if !ok {
		return 0, false, nil
	}
	n, err := model.DecodeNumber(key, raw)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (s *Indexer) record(action model.JournalAction, height uint64, hash, parent model.Hash, created, spent, removed int) {
	if s.journal == nil {
		return
	}
	s.journal.Record(model.JournalEntry{
		Network:    s.cfg.Network,
		Action:     action,
		Height:     height,
		Hash:       hash,
		ParentHash: parent,
		Created:    uint32(created),
		Spent:      uint32(spent),
		Removed:    uint32(removed),
		Time:       s.now().UTC(),
	})
}
