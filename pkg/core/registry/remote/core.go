//
//  Copyright © Altinn. All rights reserved.
//

// Package remote implements the registry collaborator interfaces as
// HTTP clients against the party registry, profile, and resource
// registry services configured in the [config] package.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/registry"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var logger = logging.GetLogger("accessmgmt.registry.remote")

const agent = "registry"

// Factory creates remote registry services from configuration.
type Factory struct {
	// Client optionally overrides the HTTP client, e.g. to inject
	// transport middleware. A default client with a sane timeout is
	// used when nil.
	Client *http.Client
}

// NewFactory creates a new Factory for the remote registry.
func NewFactory() registry.Factory {
	return &Factory{}
}

// NewService creates a registry service from the configured base URLs.
// Returns an error if any of the three URLs is missing or unparsable.
func (f *Factory) NewService() (registry.Service, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	urls := map[string]string{}
	for _, key := range []string{config.PartyRegistryURL, config.ProfileRegistryURL, config.ResourceRegistryURL} {
		raw := config.VConfig.GetString(key)
		if raw == "" {
			return nil, errors.Errorf("missing registry url config %q", key)
		}
		if _, err := url.Parse(raw); err != nil {
			return nil, errors.Wrapf(err, "invalid registry url config %q", key)
		}
		urls[key] = raw
	}

	return &service{
		parties:   &partyClient{client: client, base: urls[config.PartyRegistryURL]},
		profiles:  &profileClient{client: client, base: urls[config.ProfileRegistryURL]},
		resources: &resourceClient{client: client, base: urls[config.ResourceRegistryURL]},
	}, nil
}

type service struct {
	parties   *partyClient
	profiles  *profileClient
	resources *resourceClient
}

func (s *service) Parties() registry.PartyService { return s.parties }

func (s *service) Profiles() registry.ProfileService { return s.profiles }

func (s *service) Resources() registry.ResourceService { return s.resources }

// get performs one GET round trip and decodes the JSON body into out.
// A 404 or 204 response reports found=false with no error; any other
// non-2xx status is an infrastructure error.
func get(ctx context.Context, client *http.Client, rawurl string, out interface{}) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return false, common.WrapError(common.KindInfrastructure, err, "building registry request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, common.WrapError(common.KindCancelled, ctx.Err(), "registry lookup cancelled")
		}
		return false, common.WrapError(common.KindInfrastructure, err, "registry lookup failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, common.NewErrorf(common.KindInfrastructure,
			"registry lookup returned status %d for %s", resp.StatusCode, rawurl)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, common.WrapError(common.KindInfrastructure,
			errors.Wrap(err, "decoding registry response"), "registry lookup failed")
	}
	return true, nil
}

type partyClient struct {
	client *http.Client
	base   string
}

func (c *partyClient) lookup(ctx context.Context, rawurl string) (*registry.Party, error) {
	var party registry.Party
	found, err := get(ctx, c.client, rawurl, &party)
	if err != nil || !found {
		return nil, err
	}
	return &party, nil
}

func (c *partyClient) GetPartyByID(ctx context.Context, partyID int) (*registry.Party, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/%d", c.base, partyID))
}

func (c *partyClient) GetPartyByUUID(ctx context.Context, partyUUID uuid.UUID) (*registry.Party, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?uuid=%s", c.base, url.QueryEscape(partyUUID.String())))
}

func (c *partyClient) GetPartyBySSN(ctx context.Context, ssn string) (*registry.Party, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?ssn=%s", c.base, url.QueryEscape(ssn)))
}

func (c *partyClient) GetPartyByOrgNumber(ctx context.Context, orgNumber string) (*registry.Party, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?orgNumber=%s", c.base, url.QueryEscape(orgNumber)))
}

type profileClient struct {
	client *http.Client
	base   string
}

func (c *profileClient) lookup(ctx context.Context, rawurl string) (*registry.UserProfile, error) {
	var profile registry.UserProfile
	found, err := get(ctx, c.client, rawurl, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func (c *profileClient) GetUserByID(ctx context.Context, userID int) (*registry.UserProfile, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/%d", c.base, userID))
}

func (c *profileClient) GetUserByUsername(ctx context.Context, username string) (*registry.UserProfile, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?username=%s", c.base, url.QueryEscape(username)))
}

func (c *profileClient) GetUserBySSN(ctx context.Context, ssn string) (*registry.UserProfile, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?ssn=%s", c.base, url.QueryEscape(ssn)))
}

func (c *profileClient) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*registry.UserProfile, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?uuid=%s", c.base, url.QueryEscape(userUUID.String())))
}

type resourceClient struct {
	client *http.Client
	base   string
}

func (c *resourceClient) lookup(ctx context.Context, rawurl string) (*registry.ServiceResource, error) {
	var resource registry.ServiceResource
	found, err := get(ctx, c.client, rawurl, &resource)
	if err != nil || !found {
		return nil, err
	}
	return &resource, nil
}

func (c *resourceClient) GetResource(ctx context.Context, resourceID string) (*registry.ServiceResource, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/%s", c.base, url.PathEscape(resourceID)))
}

func (c *resourceClient) GetResourceByApp(ctx context.Context, appOwner, appID string) (*registry.ServiceResource, error) {
	logger.Debugf(agent, "GetResourceByApp", "looking up app %s/%s", appOwner, appID)
	return c.lookup(ctx, fmt.Sprintf("%s/lookup?org=%s&app=%s",
		c.base, url.QueryEscape(appOwner), url.QueryEscape(appID)))
}
