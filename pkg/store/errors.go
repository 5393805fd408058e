package store

import "github.com/pkg/errors"

var KeyNotFoundErr = errors.New("key not found")
var TxnCommittedErr = errors.New("txn is already committed, can not perform the operation")
var TxnAbortedErr = errors.New("txn is already aborted, can not perform the operation")

// IsTxnClosed reports whether err is either terminal-state failure.
func IsTxnClosed(err error) bool {
	return errors.Is(err, TxnCommittedErr) || errors.Is(err, TxnAbortedErr)
}
