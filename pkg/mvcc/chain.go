package mvcc

// VersionChain is the ordered history of one key, newest first. It only
// grows at the head; inserted versions are never reordered or rewritten.
type VersionChain struct {
	versions []*Version // newest -> oldest
}

func NewVersionChain() *VersionChain {
	return &VersionChain{}
}

// Push prepends a committed version. Chain order therefore reflects commit
// order.
func (chain *VersionChain) Push(version *Version) {
	chain.versions = append([]*Version{version}, chain.versions...)
}

func (chain *VersionChain) Len() int {
	return len(chain.versions)
}

// Head returns the most recently committed version, nil on an empty chain.
func (chain *VersionChain) Head() *Version {
	if len(chain.versions) == 0 {
		return nil
	}
	return chain.versions[0]
}

// Resolve walks the chain newest to oldest and returns the single version a
// transaction with the given snapshot boundary observes. A visible tombstone
// shadows everything older, so the walk stops there with not-found.
func (chain *VersionChain) Resolve(snapshot uint64) (*Version, bool) {
	for _, version := range chain.versions {
		if !version.VisibleTo(snapshot) {
			continue
		}
		if version.DeleteVisibleTo(snapshot) {
			return nil, false
		}
		return version, true
	}
	return nil, false
}
