/*

SPDX-Copyright: Copyright (c) project contributors
SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/promptworks/github-org-repo-access-report/cache"
	"github.com/promptworks/github-org-repo-access-report/model"

	log "github.com/sirupsen/logrus"
)

// CachedRemote wraps every Remote operation with a look-aside check
// against the response cache. Keys are the operation name plus its
// arguments, values are the JSON-encoded results. Failures propagate
// uncached so a rerun re-attempts the same call.
type CachedRemote struct {
	remote Remote
	store  cache.Cache
}

func Cached(r Remote, store cache.Cache) *CachedRemote {
	return &CachedRemote{remote: r, store: store}
}

func (c *CachedRemote) load(key string, out interface{}) bool {
	data, err := c.store.Get(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		// treat a corrupt entry as a miss, the fetch overwrites it
		log.Warnf("Discarding unreadable cache entry %s. %s", key, err)
		return false
	}
	return true
}

func (c *CachedRemote) save(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warnf("Not caching %s. %s", key, err)
		return
	}
	if err := c.store.Set(key, data); err != nil {
		log.Warnf("Not caching %s. %s", key, err)
	}
}

func (c *CachedRemote) GetOrg(ctx context.Context, orgID string) (*model.Org, error) {
	key := fmt.Sprintf("org:%s", orgID)
	// if we fetch from the cache we can return immediately
	cached := new(model.Org)
	if c.load(key, cached) {
		return cached, nil
	}
	// else we try to grab from the remote system and
	// populate our cache.
	org, err := c.remote.GetOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.save(key, org)
	return org, nil
}

func (c *CachedRemote) GetOrgMembers(ctx context.Context, orgID string) ([]string, error) {
	key := fmt.Sprintf("members:%s", orgID)
	var cached []string
	if c.load(key, &cached) {
		return cached, nil
	}
	members, err := c.remote.GetOrgMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.save(key, members)
	return members, nil
}

func (c *CachedRemote) GetMembership(ctx context.Context, orgID string, login string) (*model.Membership, error) {
	key := fmt.Sprintf("membership:%s:%s", orgID, login)
	cached := new(model.Membership)
	if c.load(key, cached) {
		return cached, nil
	}
	membership, err := c.remote.GetMembership(ctx, orgID, login)
	if err != nil {
		return nil, err
	}
	c.save(key, membership)
	return membership, nil
}

func (c *CachedRemote) GetOrgTeams(ctx context.Context, orgID string) ([]*model.Team, error) {
	key := fmt.Sprintf("teams:%s", orgID)
	var cached []*model.Team
	if c.load(key, &cached) {
		return cached, nil
	}
	teams, err := c.remote.GetOrgTeams(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.save(key, teams)
	return teams, nil
}

func (c *CachedRemote) GetOrgRepos(ctx context.Context, orgID string) ([]*model.Repo, error) {
	key := fmt.Sprintf("repos:%s", orgID)
	var cached []*model.Repo
	if c.load(key, &cached) {
		return cached, nil
	}
	repos, err := c.remote.GetOrgRepos(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.save(key, repos)
	return repos, nil
}

func (c *CachedRemote) GetCollaborators(ctx context.Context, owner string, name string) ([]*model.Collaborator, error) {
	key := fmt.Sprintf("collab:%s/%s", owner, name)
	var cached []*model.Collaborator
	if c.load(key, &cached) {
		return cached, nil
	}
	collabs, err := c.remote.GetCollaborators(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	c.save(key, collabs)
	return collabs, nil
}

func (c *CachedRemote) GetRepoTeams(ctx context.Context, owner string, name string) ([]*model.Team, error) {
	key := fmt.Sprintf("repoteams:%s/%s", owner, name)
	var cached []*model.Team
	if c.load(key, &cached) {
		return cached, nil
	}
	teams, err := c.remote.GetRepoTeams(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	c.save(key, teams)
	return teams, nil
}

func (c *CachedRemote) GetTeamMembers(ctx context.Context, orgID string, slug string) ([]string, error) {
	key := fmt.Sprintf("teammembers:%s:%s", orgID, slug)
	var cached []string
	if c.load(key, &cached) {
		return cached, nil
	}
	members, err := c.remote.GetTeamMembers(ctx, orgID, slug)
	if err != nil {
		return nil, err
	}
	c.save(key, members)
	return members, nil
}

func (c *CachedRemote) GetPerson(ctx context.Context, login string) (*model.Person, error) {
	key := fmt.Sprintf("person:%s", login)
	cached := new(model.Person)
	if c.load(key, cached) {
		return cached, nil
	}
	person, err := c.remote.GetPerson(ctx, login)
	if err != nil {
		return nil, err
	}
	c.save(key, person)
	return person, nil
}
