//
//  Copyright © Altinn. All rights reserved.
//

// Package mock implements the registry collaborator interfaces from
// YAML fixture data, for mock mode and unit tests.
package mock

import (
	"context"
	"os"
	"strings"

	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/registry"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = logging.GetLogger("accessmgmt.registry.mock")

const agent = "mock"

// networkErrorMarker in a lookup key simulates an unreachable backend,
// letting tests exercise the infrastructure error path.
const networkErrorMarker = "networkerror"

// Fixtures is the on-disk shape of the fixture file referenced by the
// mock.fixtures config key.
type Fixtures struct {
	Parties   []*registry.Party           `yaml:"parties"`
	Profiles  []*registry.UserProfile     `yaml:"profiles"`
	Resources []*registry.ServiceResource `yaml:"resources"`
}

// Factory creates fixture-backed registry services.
type Factory struct {
	// Path optionally overrides the fixture file location; when empty
	// the mock.fixtures config key is used.
	Path string
}

// NewFactory creates a new Factory for the fixture registry.
func NewFactory() registry.Factory {
	return &Factory{}
}

// NewService loads the fixture file and returns a registry service
// answering lookups from it. An absent fixture path yields an empty
// registry, which is still useful for tests that only exercise the
// change log.
func (f *Factory) NewService() (registry.Service, error) {
	logger.Warn(agent, "Init", "RUNNING WITH FIXTURE REGISTRY. SHOULD NOT BE USED IN PRODUCTION")

	path := f.Path
	if path == "" {
		path = config.VConfig.GetString(config.MockFixtures)
	}

	fixtures := &Fixtures{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from trusted config
		if err != nil {
			return nil, errors.Wrapf(err, "reading registry fixtures %q", path)
		}
		if err := yaml.Unmarshal(data, fixtures); err != nil {
			return nil, errors.Wrapf(err, "parsing registry fixtures %q", path)
		}
	}

	return NewService(fixtures), nil
}

// NewService returns a registry service answering lookups from the
// given fixtures. Useful for tests that build fixtures in code.
func NewService(fixtures *Fixtures) registry.Service {
	// link profiles to their party so ssn lookups work without the
	// fixture author having to embed the party twice
	byID := make(map[int]*registry.Party, len(fixtures.Parties))
	for _, p := range fixtures.Parties {
		byID[p.PartyID] = p
	}
	for _, u := range fixtures.Profiles {
		if u.Party == nil {
			u.Party = byID[u.PartyID]
		}
	}
	return &service{fixtures: fixtures}
}

type service struct {
	fixtures *Fixtures
}

func (s *service) Parties() registry.PartyService { return (*partyService)(s) }

func (s *service) Profiles() registry.ProfileService { return (*profileService)(s) }

func (s *service) Resources() registry.ResourceService { return (*resourceService)(s) }

func simulateOutage(key string) error {
	if strings.Contains(strings.ToLower(key), networkErrorMarker) {
		return common.NewError(common.KindInfrastructure, "registry unreachable")
	}
	return nil
}

type partyService service

func (s *partyService) find(pred func(*registry.Party) bool) *registry.Party {
	for _, p := range s.fixtures.Parties {
		if pred(p) {
			return p
		}
	}
	return nil
}

func (s *partyService) GetPartyByID(ctx context.Context, partyID int) (*registry.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(p *registry.Party) bool { return p.PartyID == partyID }), nil
}

func (s *partyService) GetPartyByUUID(ctx context.Context, partyUUID uuid.UUID) (*registry.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(p *registry.Party) bool { return p.PartyUUID == partyUUID }), nil
}

func (s *partyService) GetPartyBySSN(ctx context.Context, ssn string) (*registry.Party, error) {
	if err := simulateOutage(ssn); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(p *registry.Party) bool { return p.SSN == ssn }), nil
}

func (s *partyService) GetPartyByOrgNumber(ctx context.Context, orgNumber string) (*registry.Party, error) {
	if err := simulateOutage(orgNumber); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(p *registry.Party) bool { return p.OrgNumber == orgNumber }), nil
}

type profileService service

func (s *profileService) find(pred func(*registry.UserProfile) bool) *registry.UserProfile {
	for _, u := range s.fixtures.Profiles {
		if pred(u) {
			return u
		}
	}
	return nil
}

func (s *profileService) GetUserByID(ctx context.Context, userID int) (*registry.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u *registry.UserProfile) bool { return u.UserID == userID }), nil
}

func (s *profileService) GetUserByUsername(ctx context.Context, username string) (*registry.UserProfile, error) {
	if err := simulateOutage(username); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u *registry.UserProfile) bool {
		return strings.EqualFold(u.Username, username)
	}), nil
}

func (s *profileService) GetUserBySSN(ctx context.Context, ssn string) (*registry.UserProfile, error) {
	if err := simulateOutage(ssn); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u *registry.UserProfile) bool {
		return u.Party != nil && u.Party.SSN == ssn
	}), nil
}

func (s *profileService) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*registry.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u *registry.UserProfile) bool { return u.UserUUID == userUUID }), nil
}

type resourceService service

func (s *resourceService) find(pred func(*registry.ServiceResource) bool) *registry.ServiceResource {
	for _, r := range s.fixtures.Resources {
		if pred(r) {
			return r
		}
	}
	return nil
}

func (s *resourceService) GetResource(ctx context.Context, resourceID string) (*registry.ServiceResource, error) {
	if err := simulateOutage(resourceID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(r *registry.ServiceResource) bool {
		return strings.EqualFold(r.Identifier, resourceID)
	}), nil
}

func (s *resourceService) GetResourceByApp(ctx context.Context, appOwner, appID string) (*registry.ServiceResource, error) {
	if err := simulateOutage(appOwner + "/" + appID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(r *registry.ServiceResource) bool {
		return strings.EqualFold(r.AppOwner, appOwner) && strings.EqualFold(r.AppID, appID)
	}), nil
}
