package model

import (
	"sort"
	"time"
)

// Temporal is an immutable, date-sorted collection of row-versions sharing a
// logical identity. It answers the one question the scheduler keeps asking:
// which version of this item is active on date d?
type Temporal struct {
	id       string
	versions []Entity // ascending by StartDate
}

// NewTemporal builds the version index for one item id. The input is copied
// and sorted; the temporal is never mutated afterwards.
func NewTemporal(id string, versions []Entity) *Temporal {
	vs := make([]Entity, len(versions))
	copy(vs, versions)
	sort.SliceStable(vs, func(i, j int) bool {
		return vs[i].Base().StartDate().Before(vs[j].Base().StartDate())
	})
	return &Temporal{id: id, versions: vs}
}

// ID returns the shared item id.
func (t *Temporal) ID() string { return t.id }

// Versions returns the sorted version list. Callers must not modify it.
func (t *Temporal) Versions() []Entity { return t.versions }

// First returns the earliest version, or nil for an empty temporal.
func (t *Temporal) First() Entity {
	if len(t.versions) == 0 {
		return nil
	}
	return t.versions[0]
}

// Last returns the latest version, or nil for an empty temporal.
func (t *Temporal) Last() Entity {
	if len(t.versions) == 0 {
		return nil
	}
	return t.versions[len(t.versions)-1]
}

// OnDate returns the version active on d: the latest version whose start is
// on or before d, unless that version is flagged ended, in which case the
// logical item no longer exists and nil is returned. Dates before the first
// version's start also return nil.
func (t *Temporal) OnDate(d time.Time) Entity {
	var active Entity
	for _, v := range t.versions {
		if v.Base().StartDate().After(d) {
			break
		}
		active = v
	}
	if active == nil || active.Base().Ended() {
		return nil
	}
	return active
}

// Slice returns a new temporal restricted to versions taking effect before
// to, keeping the version already active at from so lookups within the
// sub-range behave identically.
func (t *Temporal) Slice(from, to time.Time) *Temporal {
	var vs []Entity
	for i, v := range t.versions {
		start := v.Base().StartDate()
		if !start.Before(to) {
			break
		}
		if start.Before(from) {
			// Keep only the last version preceding the range.
			if i+1 < len(t.versions) && !t.versions[i+1].Base().StartDate().After(from) {
				continue
			}
		}
		vs = append(vs, v)
	}
	return &Temporal{id: t.id, versions: vs}
}
