//
//  Copyright © Altinn. All rights reserved.
//

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func grant(resource string, covered int, created time.Time) *delegation.Change {
	return &delegation.Change{
		Type:              delegation.ChangeGrant,
		ResourceID:        resource,
		MatchType:         delegation.MatchResourceRegistry,
		OfferedByPartyID:  50005545,
		CoveredByPartyID:  covered,
		PerformedByUserID: 20000490,
		Created:           created,
	}
}

func revoke(resource string, covered int, created time.Time) *delegation.Change {
	c := grant(resource, covered, created)
	c.Type = delegation.ChangeRevoke
	return c
}

func TestInsertAssignsChangeIDs(t *testing.T) {
	repo := New()
	ctx := context.Background()

	first, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ChangeID)

	second, err := repo.InsertChange(ctx, grant("scan-app", 50002108, t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ChangeID)
}

func TestInsertDefaultsCreated(t *testing.T) {
	repo := New()

	stored, err := repo.InsertChange(context.Background(), grant("scan-app", 50002598, time.Time{}))
	require.NoError(t, err)
	assert.False(t, stored.Created.IsZero())
}

func TestGrantRevokeGrantFlipsCurrentState(t *testing.T) {
	repo := New()
	ctx := context.Background()
	key := delegation.Key{
		ResourceID:       "scan-app",
		MatchType:        delegation.MatchResourceRegistry,
		OfferedByPartyID: 50005545,
		CoveredByPartyID: 50002598,
	}

	current, err := repo.GetCurrentChange(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	require.NoError(t, err)

	current, err = repo.GetCurrentChange(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.Active())

	_, err = repo.InsertChange(ctx, revoke("scan-app", 50002598, t0.Add(time.Minute)))
	require.NoError(t, err)

	current, err = repo.GetCurrentChange(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.False(t, current.Active())

	_, err = repo.InsertChange(ctx, grant("scan-app", 50002598, t0.Add(2*time.Minute)))
	require.NoError(t, err)

	current, err = repo.GetCurrentChange(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.Active())
	assert.Equal(t, int64(3), current.ChangeID)
}

func TestInsertRejectsStaleChange(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0.Add(time.Hour)))
	require.NoError(t, err)

	_, err = repo.InsertChange(ctx, revoke("scan-app", 50002598, t0))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestInsertAllowsEqualTimestamps(t *testing.T) {
	repo := New()
	ctx := context.Background()
	key := delegation.Key{
		ResourceID:       "scan-app",
		MatchType:        delegation.MatchResourceRegistry,
		OfferedByPartyID: 50005545,
		CoveredByPartyID: 50002598,
	}

	_, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	require.NoError(t, err)
	_, err = repo.InsertChange(ctx, revoke("scan-app", 50002598, t0))
	require.NoError(t, err)

	// equal timestamps tie-break on ChangeID, so the revoke wins
	current, err := repo.GetCurrentChange(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.False(t, current.Active())
}

func TestInsertValidation(t *testing.T) {
	repo := New()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*delegation.Change)
	}{
		{"nil change", nil},
		{"unknown type", func(c *delegation.Change) { c.Type = "transfer" }},
		{"unknown match type", func(c *delegation.Change) { c.MatchType = "wildcard" }},
		{"missing resource id", func(c *delegation.Change) { c.ResourceID = "" }},
		{"missing offering party", func(c *delegation.Change) { c.OfferedByPartyID = 0 }},
		{"missing recipient", func(c *delegation.Change) { c.CoveredByPartyID = 0 }},
		{"both recipient keyings", func(c *delegation.Change) { c.CoveredByUserID = 20000490 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var change *delegation.Change
			if tt.mutate != nil {
				change = grant("scan-app", 50002598, t0)
				tt.mutate(change)
			}
			_, err := repo.InsertChange(ctx, change)
			require.Error(t, err)
			assert.True(t, common.IsKind(err, common.KindValidation))
		})
	}
}

func TestInsertIsolatesCallerMutation(t *testing.T) {
	repo := New()
	ctx := context.Background()

	original := grant("scan-app", 50002598, t0)
	stored, err := repo.InsertChange(ctx, original)
	require.NoError(t, err)

	original.ResourceID = "mutated"
	stored.ResourceID = "also-mutated"

	current, err := repo.GetCurrentChange(ctx, delegation.Key{
		ResourceID:       "scan-app",
		MatchType:        delegation.MatchResourceRegistry,
		OfferedByPartyID: 50005545,
		CoveredByPartyID: 50002598,
	})
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "scan-app", current.ResourceID)
}

func TestGetAllCurrentChanges(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	require.NoError(t, err)
	_, err = repo.InsertChange(ctx, grant("sensitive-register", 50002108, t0.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.InsertChange(ctx, revoke("scan-app", 50002598, t0.Add(2*time.Minute)))
	require.NoError(t, err)

	all, err := repo.GetAllCurrentChanges(ctx, delegation.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sensitive-register", all[0].ResourceID)

	filtered, err := repo.GetAllCurrentChanges(ctx, delegation.Filter{
		CoveredByPartyIDs: []int{50002598},
	})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestGetChangeLogOrdersOldestFirst(t *testing.T) {
	repo := New()
	ctx := context.Background()
	key := delegation.Key{
		ResourceID:       "scan-app",
		MatchType:        delegation.MatchResourceRegistry,
		OfferedByPartyID: 50005545,
		CoveredByPartyID: 50002598,
	}

	_, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	require.NoError(t, err)
	_, err = repo.InsertChange(ctx, revoke("scan-app", 50002598, t0.Add(time.Minute)))
	require.NoError(t, err)

	log, err := repo.GetChangeLog(ctx, key)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, delegation.ChangeGrant, log[0].Type)
	assert.Equal(t, delegation.ChangeRevoke, log[1].Type)
}

func TestCancelledContext(t *testing.T) {
	repo := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.InsertChange(ctx, grant("scan-app", 50002598, t0))
	assert.True(t, common.IsKind(err, common.KindCancelled))

	_, err = repo.GetCurrentChange(ctx, delegation.Key{})
	assert.True(t, common.IsKind(err, common.KindCancelled))

	_, err = repo.GetAllCurrentChanges(ctx, delegation.Filter{})
	assert.True(t, common.IsKind(err, common.KindCancelled))

	_, err = repo.GetChangeLog(ctx, delegation.Key{})
	assert.True(t, common.IsKind(err, common.KindCancelled))
}
