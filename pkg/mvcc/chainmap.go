package mvcc

import (
	"sync"

	"github.com/tidwall/btree"
)

// ChainMap owns every committed version chain, keyed by user key. All
// mutation goes through Append; callers never get their hands on a chain
// they could rewrite mid-history.
type ChainMap struct {
	lock   sync.RWMutex
	chains btree.Map[string, *VersionChain]
}

func NewChainMap() *ChainMap {
	return &ChainMap{}
}

// Append pushes a committed version onto the head of the key's chain,
// creating the chain on first use.
func (m *ChainMap) Append(key string, version *Version) {
	m.lock.Lock()
	defer m.lock.Unlock()

	chain, ok := m.chains.Get(key)
	if !ok {
		chain = NewVersionChain()
		m.chains.Set(key, chain)
	}
	chain.Push(version)
}

// Resolve returns the version of key visible at the snapshot boundary.
func (m *ChainMap) Resolve(key string, snapshot uint64) (*Version, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	chain, ok := m.chains.Get(key)
	if !ok {
		return nil, false
	}
	return chain.Resolve(snapshot)
}

func (m *ChainMap) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.chains.Len()
}

// Keys returns every key that has at least one committed version, in order.
func (m *ChainMap) Keys() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.chains.Keys()
}
