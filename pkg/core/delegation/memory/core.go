//
//  Copyright © Altinn. All rights reserved.
//

// Package memory provides an in-process delegation change log, used as
// the default repository in mock mode and throughout the test suites.
// The log lives only as long as the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
)

// Factory creates in-memory repositories.
type Factory struct{}

// NewRepository implements [delegation.RepositoryFactory].
func (f *Factory) NewRepository() (delegation.Repository, error) {
	return New(), nil
}

type repository struct {
	mutex  sync.RWMutex
	nextID int64
	log    []*delegation.Change
}

// New creates an empty in-memory change log.
func New() delegation.Repository {
	return &repository{nextID: 1}
}

func validate(change *delegation.Change) error {
	switch {
	case change == nil:
		return common.NewError(common.KindValidation, "change must not be nil")
	case change.Type != delegation.ChangeGrant && change.Type != delegation.ChangeRevoke:
		return common.NewErrorf(common.KindValidation, "unknown change type %q", change.Type)
	case change.MatchType != delegation.MatchAltinnApp && change.MatchType != delegation.MatchResourceRegistry:
		return common.NewErrorf(common.KindValidation, "unknown resource match type %q", change.MatchType)
	case change.ResourceID == "":
		return common.NewError(common.KindValidation, "change must carry a resource id")
	case change.OfferedByPartyID == 0:
		return common.NewError(common.KindValidation, "change must carry an offering party id")
	case change.CoveredByPartyID == 0 && change.CoveredByUserID == 0:
		return common.NewError(common.KindValidation, "change must carry a covered party or user id")
	case change.CoveredByPartyID != 0 && change.CoveredByUserID != 0:
		return common.NewError(common.KindValidation, "change must not carry both a covered party and user id")
	}
	return nil
}

func (r *repository) InsertChange(ctx context.Context, change *delegation.Change) (*delegation.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(common.KindCancelled, err, "insert cancelled")
	}
	if err := validate(change); err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := deepcopy.Copy(change).(*delegation.Change)
	if stored.Created.IsZero() {
		stored.Created = time.Now().UTC()
	}

	// optimistic check: a caller acting on stale state loses; equal
	// timestamps are allowed and tie-broken by ChangeID
	if latest := delegation.Latest(r.matching(stored.Key())); latest != nil && stored.Created.Before(latest.Created) {
		return nil, common.NewErrorf(common.KindConflict,
			"a newer change (id %d) already exists for resource %q", latest.ChangeID, stored.ResourceID)
	}

	stored.ChangeID = r.nextID
	r.nextID++
	r.log = append(r.log, stored)

	return deepcopy.Copy(stored).(*delegation.Change), nil
}

// matching returns the live entries for the key. Callers must hold the
// mutex and must not leak the entries without copying.
func (r *repository) matching(key delegation.Key) []*delegation.Change {
	var out []*delegation.Change
	for _, c := range r.log {
		if c.Key() == key {
			out = append(out, c)
		}
	}
	return out
}

func (r *repository) GetCurrentChange(ctx context.Context, key delegation.Key) (*delegation.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(common.KindCancelled, err, "query cancelled")
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	latest := delegation.Latest(r.matching(key))
	if latest == nil {
		return nil, nil
	}
	return deepcopy.Copy(latest).(*delegation.Change), nil
}

func (r *repository) GetAllCurrentChanges(ctx context.Context, filter delegation.Filter) ([]*delegation.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(common.KindCancelled, err, "query cancelled")
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var selected []*delegation.Change
	for _, c := range r.log {
		if filter.Matches(c) {
			selected = append(selected, c)
		}
	}

	current := delegation.CurrentGrants(selected)
	out := make([]*delegation.Change, len(current))
	for i, c := range current {
		out[i] = deepcopy.Copy(c).(*delegation.Change)
	}
	return out, nil
}

func (r *repository) GetChangeLog(ctx context.Context, key delegation.Key) ([]*delegation.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(common.KindCancelled, err, "query cancelled")
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ordered := delegation.SortLog(r.matching(key))
	out := make([]*delegation.Change, len(ordered))
	for i, c := range ordered {
		out[i] = deepcopy.Copy(c).(*delegation.Change)
	}
	return out, nil
}
