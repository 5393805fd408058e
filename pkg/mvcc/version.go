package mvcc

// Version is one historical value of a key. Once a version is pushed onto a
// chain it is never mutated; pending versions (still in a write set) belong
// to exactly one transaction.
type Version struct {
	Value     []byte
	CreatedBy uint64 // txn id that produced this version
	DeletedBy uint64 // txn id that removed it, 0 while live
	Seq       uint64 // allocation order, recorded in read sets only
}

func NewVersion(value []byte, createdBy, seq uint64) *Version {
	return &Version{
		Value:     value,
		CreatedBy: createdBy,
		Seq:       seq,
	}
}

// NewTombstone records the removal of a key. The shadowed value is kept for
// history; creator and deleter are the same transaction.
func NewTombstone(shadowed []byte, deletedBy, seq uint64) *Version {
	return &Version{
		Value:     shadowed,
		CreatedBy: deletedBy,
		DeletedBy: deletedBy,
		Seq:       seq,
	}
}

func (v *Version) Deleted() bool {
	return v.DeletedBy != 0
}

// VisibleTo reports whether the version was produced at or before the
// snapshot boundary. Deletion is checked separately.
func (v *Version) VisibleTo(snapshot uint64) bool {
	return v.CreatedBy <= snapshot
}

// DeleteVisibleTo reports whether the version's removal is inside the
// snapshot boundary.
func (v *Version) DeleteVisibleTo(snapshot uint64) bool {
	return v.DeletedBy != 0 && v.DeletedBy <= snapshot
}
