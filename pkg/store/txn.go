package store

import (
	"tiny_mvcc/pkg/mvcc"
)

// State tags where a transaction is in its lifecycle. Committed and Aborted
// are terminal; there is no way back to Active.
type State uint8

const (
	StateActive State = iota
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Txn is one unit of work. Its id doubles as the snapshot boundary: the
// chain versions it may observe are exactly those created at or before it.
// All mutation happens through the owning Store.
type Txn struct {
	id    uint64
	state State

	readSet  map[string]uint64        // key -> seq of the version observed
	writeSet map[string]*mvcc.Version // key -> pending version, not on any chain
}

func newTxn(id uint64) *Txn {
	return &Txn{
		id:       id,
		readSet:  make(map[string]uint64),
		writeSet: make(map[string]*mvcc.Version),
	}
}

func (txn *Txn) ID() uint64 {
	return txn.id
}

func (txn *Txn) State() State {
	return txn.state
}

// ensureActive is the single gate every verb passes through, distinguishing
// the two terminal states for the caller.
func (txn *Txn) ensureActive() error {
	switch txn.state {
	case StateCommitted:
		return TxnCommittedErr
	case StateAborted:
		return TxnAbortedErr
	default:
		return nil
	}
}
