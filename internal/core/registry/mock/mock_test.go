//
//  Copyright © Altinn. All rights reserved.
//

package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

func testService() registry.Service {
	return NewService(&Fixtures{
		Parties: []*registry.Party{
			{
				PartyID: 50002598,
				SSN:     "07124912037",
				Name:    "ROALD MIDTHUS LYNGVÆR",
				Person: &registry.Person{
					SSN:       "07124912037",
					Name:      "ROALD MIDTHUS LYNGVÆR",
					FirstName: "ROALD",
					LastName:  "LYNGVÆR",
				},
			},
			{
				PartyID:   50005545,
				OrgNumber: "910459880",
				Name:      "KARLSTAD OG ULOYBUKT",
				Organization: &registry.Organization{
					OrgNumber: "910459880",
					Name:      "KARLSTAD OG ULOYBUKT",
				},
			},
		},
		Profiles: []*registry.UserProfile{
			{UserID: 20000490, PartyID: 50002598},
			{UserID: 20010010, Username: "orgsystembruker", PartyID: 50005545},
		},
		Resources: []*registry.ServiceResource{
			{Identifier: "scan-app", ResourceType: "genericaccessresource", Delegable: true},
			{Identifier: "app_ttd_rf-0002", ResourceType: "altinnapp", AppOwner: "ttd", AppID: "rf-0002", Delegable: true},
		},
	})
}

func TestPartyLookups(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	party, err := svc.Parties().GetPartyByID(ctx, 50002598)
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, "07124912037", party.SSN)

	party, err = svc.Parties().GetPartyBySSN(ctx, "07124912037")
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, 50002598, party.PartyID)

	party, err = svc.Parties().GetPartyByOrgNumber(ctx, "910459880")
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, 50005545, party.PartyID)
	require.NotNil(t, party.Organization)
	assert.Equal(t, "KARLSTAD OG ULOYBUKT", party.Organization.Name)
}

func TestNotFoundReturnsNilNil(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	party, err := svc.Parties().GetPartyByID(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, party)

	profile, err := svc.Profiles().GetUserBySSN(ctx, "01010101010")
	assert.NoError(t, err)
	assert.Nil(t, profile)

	resource, err := svc.Resources().GetResource(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, resource)
}

func TestProfileLinksParty(t *testing.T) {
	svc := testService()

	profile, err := svc.Profiles().GetUserByID(context.Background(), 20000490)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.NotNil(t, profile.Party)
	assert.Equal(t, "07124912037", profile.Party.SSN)
}

func TestUsernameLookupIgnoresCase(t *testing.T) {
	svc := testService()

	profile, err := svc.Profiles().GetUserByUsername(context.Background(), "OrgSystemBruker")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 20010010, profile.UserID)
}

func TestResourceLookups(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	resource, err := svc.Resources().GetResource(ctx, "scan-app")
	require.NoError(t, err)
	require.NotNil(t, resource)
	assert.True(t, resource.Delegable)

	resource, err = svc.Resources().GetResourceByApp(ctx, "TTD", "RF-0002")
	require.NoError(t, err)
	require.NotNil(t, resource)
	assert.Equal(t, "app_ttd_rf-0002", resource.Identifier)
}

func TestSimulatedOutage(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	_, err := svc.Parties().GetPartyBySSN(ctx, "networkerror")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindInfrastructure))

	_, err = svc.Resources().GetResource(ctx, "NetworkError-resource")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindInfrastructure))
}

func TestFactoryWithMissingFixtureFile(t *testing.T) {
	factory := &Factory{Path: "does-not-exist.yaml"}
	_, err := factory.NewService()
	assert.Error(t, err)
}

func TestFactoryWithoutPathYieldsEmptyRegistry(t *testing.T) {
	config.Init()

	factory := &Factory{}
	svc, err := factory.NewService()
	require.NoError(t, err)

	party, err := svc.Parties().GetPartyByID(context.Background(), 50002598)
	assert.NoError(t, err)
	assert.Nil(t, party)
}
