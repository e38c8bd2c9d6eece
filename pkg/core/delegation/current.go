//
//  Copyright © Altinn. All rights reserved.
//

package delegation

import "sort"

// Current-state derivation. These functions are pure: given the same
// set of events they produce the same result regardless of input order,
// which is what makes the log safe under concurrent appends.

// Latest returns the change with the maximal (Created, ChangeID)
// ordering, or nil for an empty set. Note that a revoke can be the
// latest change; callers deciding authorization must also check
// [Change.Active].
func Latest(changes []*Change) *Change {
	var latest *Change
	for _, c := range changes {
		if c.Newer(latest) {
			latest = c
		}
	}
	return latest
}

// CurrentGrants reduces a set of changes to the currently active
// delegations: for every distinct key, the latest change is selected,
// and keys whose latest change is a revoke are dropped entirely. The
// result is sorted by (Created, ChangeID) so the derivation is
// deterministic for any input order.
func CurrentGrants(changes []*Change) []*Change {
	byKey := make(map[Key]*Change)
	for _, c := range changes {
		if c.Newer(byKey[c.Key()]) {
			byKey[c.Key()] = c
		}
	}

	out := make([]*Change, 0, len(byKey))
	for _, c := range byKey {
		if c.Active() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].Newer(out[i])
	})
	return out
}

// SortLog orders changes oldest to newest by (Created, ChangeID),
// the presentation order for audit/history views.
func SortLog(changes []*Change) []*Change {
	out := make([]*Change, len(changes))
	copy(out, changes)
	sort.Slice(out, func(i, j int) bool {
		return out[j].Newer(out[i])
	})
	return out
}
