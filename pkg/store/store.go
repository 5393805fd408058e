// Package store implements an in-memory multi-version key-value store. Each
// key carries a chain of immutable versions; a transaction buffers its writes
// until commit and reads from a snapshot fixed at begin time, so readers and
// writers never block each other.
package store

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tiny_mvcc/pkg/metrics"
	"tiny_mvcc/pkg/mvcc"
)

// Store owns every version chain and the active-transaction registry. It is
// the sole mutator of committed state: transactions hand it their write sets
// and never touch a chain directly.
type Store struct {
	lock   sync.Mutex
	chains *mvcc.ChainMap
	active map[uint64]*Txn // txn id -> txn

	txnIDs mvcc.Clock // allocates ids, id == snapshot boundary
	seqs   mvcc.Clock // allocates version sequence numbers

	log     *zap.Logger
	metrics *metrics.StoreMetrics
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithMetrics registers the store's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Store) { s.metrics = metrics.New(reg) }
}

func New(opts ...Option) *Store {
	s := &Store{
		chains: mvcc.NewChainMap(),
		active: make(map[uint64]*Txn),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	return s
}

// Begin starts a transaction. The id is its snapshot boundary: chain versions
// created at or before it are the ones it may observe.
func (s *Store) Begin() *Txn {
	s.lock.Lock()
	defer s.lock.Unlock()

	txn := newTxn(s.txnIDs.Next())
	s.active[txn.id] = txn

	s.metrics.TxnsBegun.Inc()
	s.metrics.ActiveTxns.Inc()
	s.log.Debug("begin", zap.Uint64("txn", txn.id))
	return txn
}

// Get returns the value of key as observed by txn: its own pending write if
// it has one, otherwise the committed version visible at its snapshot.
func (s *Store) Get(txn *Txn, key string) ([]byte, error) {
	if err := txn.ensureActive(); err != nil {
		return nil, err
	}
	s.metrics.Reads.Inc()

	if pending, ok := txn.writeSet[key]; ok {
		if pending.Deleted() {
			return nil, errors.Wrapf(KeyNotFoundErr, "key %q", key)
		}
		return pending.Value, nil
	}

	version, ok := s.chains.Resolve(key, txn.id)
	if !ok {
		return nil, errors.Wrapf(KeyNotFoundErr, "key %q", key)
	}

	// Remember what was read, for conflict detection layered on top later.
	txn.readSet[key] = version.Seq
	return version.Value, nil
}

// Put buffers a write. Blind writes are legal: no existence check, and a
// repeated Put simply replaces the pending slot.
func (s *Store) Put(txn *Txn, key string, value []byte) error {
	if err := txn.ensureActive(); err != nil {
		return err
	}
	s.metrics.Writes.Inc()

	txn.writeSet[key] = mvcc.NewVersion(value, txn.id, s.seqs.Next())
	return nil
}

// Delete buffers a removal. A pending write by the same transaction is
// marked deleted in place, so write-then-delete collapses to a pure delete;
// otherwise the key must be visible at the transaction's snapshot.
func (s *Store) Delete(txn *Txn, key string) error {
	if err := txn.ensureActive(); err != nil {
		return err
	}
	s.metrics.Deletes.Inc()

	if pending, ok := txn.writeSet[key]; ok {
		pending.DeletedBy = txn.id
		return nil
	}

	version, ok := s.chains.Resolve(key, txn.id)
	if !ok {
		return errors.Wrapf(KeyNotFoundErr, "key %q", key)
	}

	txn.writeSet[key] = mvcc.NewTombstone(version.Value, txn.id, s.seqs.Next())
	return nil
}

// Commit splices the write set onto the chains and closes the transaction.
// This is the only moment committed state changes. An empty write set is
// legal; the commit is then a pure state transition.
func (s *Store) Commit(txn *Txn) error {
	if err := txn.ensureActive(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for key, version := range txn.writeSet {
		s.chains.Append(key, version)
	}

	txn.state = StateCommitted
	delete(s.active, txn.id)

	s.metrics.TxnsCommitted.Inc()
	s.metrics.VersionsCommitted.Add(float64(len(txn.writeSet)))
	s.metrics.ActiveTxns.Dec()
	s.log.Debug("commit", zap.Uint64("txn", txn.id), zap.Int("writes", len(txn.writeSet)))
	return nil
}

// Rollback discards the write set and closes the transaction. Rolling back
// an already-aborted transaction is a no-op; a committed one is an error.
func (s *Store) Rollback(txn *Txn) error {
	if txn.state == StateCommitted {
		return TxnCommittedErr
	}
	if txn.state == StateAborted {
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	txn.readSet = make(map[string]uint64)
	txn.writeSet = make(map[string]*mvcc.Version)
	txn.state = StateAborted
	delete(s.active, txn.id)

	s.metrics.TxnsAborted.Inc()
	s.metrics.ActiveTxns.Dec()
	s.log.Debug("rollback", zap.Uint64("txn", txn.id))
	return nil
}

// View runs fn in a transaction that is always rolled back, whatever fn did.
func (s *Store) View(fn func(txn *Txn) error) error {
	txn := s.Begin()
	defer func() { _ = s.Rollback(txn) }()

	return fn(txn)
}

// Update runs fn in a transaction and commits it if fn succeeds; on error
// the transaction is rolled back and the error returned.
func (s *Store) Update(fn func(txn *Txn) error) error {
	txn := s.Begin()
	// Once committed the deferred rollback fails the state check and leaves
	// everything untouched, so this only cleans up the error paths.
	defer func() { _ = s.Rollback(txn) }()

	if err := fn(txn); err != nil {
		return err
	}
	return s.Commit(txn)
}

// ActiveCount returns the number of transactions still in the Active state.
func (s *Store) ActiveCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.active)
}

// Keys returns every key with at least one committed version, in order.
func (s *Store) Keys() []string {
	return s.chains.Keys()
}
