//
//  Copyright © Altinn. All rights reserved.
//

package delegation

import "context"

// Filter selects a subset of the change log for bulk queries. Empty
// slices and zero values match everything for that dimension.
type Filter struct {
	OfferedByPartyIDs []int
	CoveredByPartyIDs []int
	CoveredByUserIDs  []int
	ResourceIDs       []string
	MatchType         ResourceMatchType
}

// Matches reports whether the change falls within the filter.
func (f Filter) Matches(c *Change) bool {
	if f.MatchType != "" && c.MatchType != f.MatchType {
		return false
	}
	if len(f.OfferedByPartyIDs) > 0 && !containsInt(f.OfferedByPartyIDs, c.OfferedByPartyID) {
		return false
	}
	if len(f.CoveredByPartyIDs) > 0 && !containsInt(f.CoveredByPartyIDs, c.CoveredByPartyID) {
		return false
	}
	if len(f.CoveredByUserIDs) > 0 && !containsInt(f.CoveredByUserIDs, c.CoveredByUserID) {
		return false
	}
	if len(f.ResourceIDs) > 0 && !containsString(f.ResourceIDs, c.ResourceID) {
		return false
	}
	return true
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// Repository is the persistence contract for the delegation change log.
//
// Implementations must treat the log as append-only: InsertChange is
// the only mutation, and inserted changes are never altered or removed.
// Methods deriving current state must agree with the pure functions in
// this package ([Latest], [CurrentGrants]) applied to the same events.
//
// Lookups finding nothing return (nil, nil) / an empty slice; errors
// are reserved for storage failures and carry [common.KindInfrastructure].
type Repository interface {
	// InsertChange appends one event. The repository assigns ChangeID
	// (and Created, when unset) and returns the stored event. A
	// [common.KindConflict] error is returned when the log already
	// holds a newer event for the same key than the caller observed.
	InsertChange(ctx context.Context, change *Change) (*Change, error)

	// GetCurrentChange returns the latest event for the exact key, or
	// nil when the key has no events. The latest event may be a revoke.
	GetCurrentChange(ctx context.Context, key Key) (*Change, error)

	// GetAllCurrentChanges returns the currently active grants within
	// the filter: per distinct key the latest event, with revoked keys
	// dropped.
	GetAllCurrentChanges(ctx context.Context, filter Filter) ([]*Change, error)

	// GetChangeLog returns every event for the exact key, oldest to
	// newest, unfiltered by current state.
	GetChangeLog(ctx context.Context, key Key) ([]*Change, error)
}

// RepositoryFactory creates [Repository] instances after configuration
// has been loaded.
type RepositoryFactory interface {
	NewRepository() (Repository, error)
}
