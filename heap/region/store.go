package region

import "github.com/joshuapare/g1sim/heap/object"

// Store owns the fixed region table.
type Store struct {
	regions  []*Region
	capacity int64
}

// NewStore returns a store of count Free regions of capacity bytes each.
func NewStore(count int, capacity int64) (*Store, error) {
	if count <= 0 || capacity <= 0 {
		return nil, ErrBadCount
	}
	s := &Store{
		regions:  make([]*Region, count),
		capacity: capacity,
	}
	for i := range s.regions {
		s.regions[i] = newRegion(i, capacity)
	}
	return s, nil
}

// Len returns the number of regions.
func (s *Store) Len() int { return len(s.regions) }

// Capacity returns the byte capacity of every region.
func (s *Store) Capacity() int64 { return s.capacity }

// At returns the region with the given index, or nil if out of range.
func (s *Store) At(i int) *Region {
	if i < 0 || i >= len(s.regions) {
		return nil
	}
	return s.regions[i]
}

// Regions returns the region table in index order. The slice must not be
// modified.
func (s *Store) Regions() []*Region { return s.regions }

// FindUsable returns the first region of role whose fill ratio is below
// ceiling and which has at least need bytes of headroom. Regions in the
// running collection set are skipped.
func (s *Store) FindUsable(role Role, ceiling float64, need int64) (*Region, bool) {
	for _, r := range s.regions {
		if r.role != role || r.inCSet {
			continue
		}
		if r.Fill() < ceiling && r.Headroom() >= need {
			return r, true
		}
	}
	return nil, false
}

// ClaimFree retags the first Free region to role and returns it.
func (s *Store) ClaimFree(role Role) (*Region, bool) {
	for _, r := range s.regions {
		if r.role == Free && !r.inCSet {
			r.role = role
			return r, true
		}
	}
	return nil, false
}

// FindContiguousFree returns the first run of count consecutive Free regions
// by index. It returns nil when no such run exists and never retags, so the
// caller decides whether to commit the run.
func (s *Store) FindContiguousFree(count int) []*Region {
	if count <= 0 || count > len(s.regions) {
		return nil
	}
	run := 0
	for i, r := range s.regions {
		if r.role != Free || r.inCSet {
			run = 0
			continue
		}
		run++
		if run == count {
			start := i - count + 1
			out := make([]*Region, count)
			copy(out, s.regions[start:i+1])
			return out
		}
	}
	return nil
}

// Release clears a region and reverts it to Free. The detached objects are
// returned with their owning region reset.
func (s *Store) Release(r *Region) []*object.Object {
	objs := r.Detach()
	r.role = Free
	r.inCSet = false
	return objs
}

// CountRole returns the number of regions tagged role.
func (s *Store) CountRole(role Role) int {
	n := 0
	for _, r := range s.regions {
		if r.role == role {
			n++
		}
	}
	return n
}

// ByRole returns the regions tagged role in index order.
func (s *Store) ByRole(roles ...Role) []*Region {
	var out []*Region
	for _, r := range s.regions {
		for _, role := range roles {
			if r.role == role {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Usage returns the region count and used bytes per role.
func (s *Store) Usage() map[Role]RoleUsage {
	out := make(map[Role]RoleUsage, len(Roles))
	for _, role := range Roles {
		out[role] = RoleUsage{}
	}
	for _, r := range s.regions {
		u := out[r.role]
		u.Regions++
		u.UsedBytes += r.used
		out[r.role] = u
	}
	return out
}

// RoleUsage aggregates the regions of one role.
type RoleUsage struct {
	Regions   int   `json:"regions"`
	UsedBytes int64 `json:"used_bytes"`
}
