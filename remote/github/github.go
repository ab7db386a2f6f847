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
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/promptworks/github-org-repo-access-report/envvars"
	"github.com/promptworks/github-org-repo-access-report/exterror"
	"github.com/promptworks/github-org-repo-access-report/model"
	"github.com/promptworks/github-org-repo-access-report/usage"

	"github.com/google/go-github/v30/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultURL = "https://github.com"
	DefaultAPI = "https://api.github.com/"
)

func createErrorFallback(resp *github.Response, err error, fallback int) error {
	if resp != nil {
		return exterror.Create(resp.StatusCode, err)
	}
	return exterror.Create(fallback, err)
}

func createError(resp *github.Response, err error) error {
	return createErrorFallback(resp, err, http.StatusInternalServerError)
}

type Github struct {
	URL       string
	API       string
	LoginName string
	Token     string
	Retries   int
	Timeout   time.Duration

	limiter *rate.Limiter
}

func Get() *Github {
	remote := &Github{
		API:       DefaultAPI,
		URL:       envvars.Env.Github.Url,
		LoginName: envvars.Env.Github.LoginName,
		Token:     envvars.Env.Github.Token,
		Retries:   envvars.Env.Fetch.Retries,
		Timeout:   envvars.Env.Fetch.Timeout,
	}
	if remote.URL != DefaultURL {
		remote.URL = strings.TrimSuffix(remote.URL, "/")
		remote.API = remote.URL + "/api/v3/"
	}
	hz := envvars.Env.Github.RequestsHz
	if hz < 1 {
		hz = 1
	}
	remote.limiter = rate.NewLimiter(rate.Limit(hz), hz)
	return remote
}

func (g *Github) client() *github.Client {
	return createClient(g.API, g.Token, g.limiter)
}

// withRetry runs one upstream operation with a per-attempt timeout and
// a bounded number of attempts on transient failures. Auth and
// not-found errors fail on the first attempt.
func (g *Github) withRetry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	attempts := g.Retries
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; ; attempt++ {
		usage.RecordApiRequest(op)
		attemptCtx := ctx
		var cancel context.CancelFunc
		if g.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, g.Timeout)
		}
		err = call(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil || attempt >= attempts || !exterror.Retryable(err) {
			return err
		}
		log.Warnf("Retrying %s after transient failure. %s", op, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
}

func (g *Github) GetOrg(ctx context.Context, orgID string) (*model.Org, error) {
	client := g.client()
	var res *model.Org
	err := g.withRetry(ctx, "org", func(ctx context.Context) error {
		org, resp, err := client.Organizations.Get(ctx, orgID)
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching org %s. %s", orgID, err))
		}
		res = &model.Org{
			Login:                 org.GetLogin(),
			Name:                  org.GetName(),
			Link:                  org.GetHTMLURL(),
			DefaultRepoPermission: org.GetDefaultRepoPermission(),
		}
		return nil
	})
	return res, err
}

func (g *Github) GetOrgMembers(ctx context.Context, orgID string) ([]string, error) {
	client := g.client()
	var res []string
	err := g.withRetry(ctx, "members", func(ctx context.Context) error {
		var members []*github.User
		lmOptions := github.ListMembersOptions{}
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			lmOptions.ListOptions = *opts
			next, resp, err := client.Organizations.ListMembers(ctx, orgID, &lmOptions)
			members = append(members, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching members of organization %s. %s", orgID, err))
		}
		res = res[:0]
		for _, u := range members {
			res = append(res, u.GetLogin())
		}
		return nil
	})
	return res, err
}

func (g *Github) GetMembership(ctx context.Context, orgID string, login string) (*model.Membership, error) {
	client := g.client()
	var res *model.Membership
	err := g.withRetry(ctx, "membership", func(ctx context.Context) error {
		membership, resp, err := client.Organizations.GetOrgMembership(ctx, login, orgID)
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching membership of %s in organization %s. %s", login, orgID, err))
		}
		res = &model.Membership{
			Login: login,
			Role:  membership.GetRole(),
		}
		return nil
	})
	return res, err
}

func (g *Github) GetOrgTeams(ctx context.Context, orgID string) ([]*model.Team, error) {
	client := g.client()
	var res []*model.Team
	err := g.withRetry(ctx, "teams", func(ctx context.Context) error {
		var teams []*github.Team
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			next, resp, err := client.Teams.ListTeams(ctx, orgID, opts)
			teams = append(teams, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching teams of organization %s. %s", orgID, err))
		}
		res = res[:0]
		for _, t := range teams {
			res = append(res, &model.Team{
				ID:   t.GetID(),
				Name: t.GetName(),
				Slug: t.GetSlug(),
			})
		}
		return nil
	})
	return res, err
}

func (g *Github) GetOrgRepos(ctx context.Context, orgID string) ([]*model.Repo, error) {
	client := g.client()
	var res []*model.Repo
	err := g.withRetry(ctx, "repos", func(ctx context.Context) error {
		var repos []*github.Repository
		loOpts := github.RepositoryListByOrgOptions{Type: "private"}
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			loOpts.ListOptions = *opts
			next, resp, err := client.Repositories.ListByOrg(ctx, orgID, &loOpts)
			repos = append(repos, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching repositories of organization %s. %s", orgID, err))
		}
		res = res[:0]
		for _, r := range repos {
			res = append(res, &model.Repo{
				Owner:   r.GetOwner().GetLogin(),
				Name:    r.GetName(),
				Slug:    r.GetFullName(),
				Link:    r.GetHTMLURL(),
				Private: r.GetPrivate(),
			})
		}
		return nil
	})
	return res, err
}

func (g *Github) GetCollaborators(ctx context.Context, owner string, name string) ([]*model.Collaborator, error) {
	client := g.client()
	var res []*model.Collaborator
	err := g.withRetry(ctx, "collaborators", func(ctx context.Context) error {
		var collab []*github.User
		lcOptions := github.ListCollaboratorsOptions{}
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			lcOptions.ListOptions = *opts
			next, resp, err := client.Repositories.ListCollaborators(ctx, owner, name, &lcOptions)
			collab = append(collab, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching collaborators for %s/%s. %s", owner, name, err))
		}
		res = res[:0]
		for _, u := range collab {
			perms := u.GetPermissions()
			res = append(res, &model.Collaborator{
				Login: u.GetLogin(),
				Perm: model.Perm{
					Admin: perms["admin"],
					Push:  perms["push"],
					Pull:  perms["pull"],
				},
			})
		}
		return nil
	})
	return res, err
}

func (g *Github) GetRepoTeams(ctx context.Context, owner string, name string) ([]*model.Team, error) {
	client := g.client()
	var res []*model.Team
	err := g.withRetry(ctx, "repoteams", func(ctx context.Context) error {
		var teams []*github.Team
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			next, resp, err := client.Repositories.ListTeams(ctx, owner, name, opts)
			teams = append(teams, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching teams for %s/%s. %s", owner, name, err))
		}
		res = res[:0]
		for _, t := range teams {
			res = append(res, &model.Team{
				ID:         t.GetID(),
				Name:       t.GetName(),
				Slug:       t.GetSlug(),
				Permission: t.GetPermission(),
			})
		}
		return nil
	})
	return res, err
}

func (g *Github) GetTeamMembers(ctx context.Context, orgID string, slug string) ([]string, error) {
	client := g.client()
	var res []string
	err := g.withRetry(ctx, "teammembers", func(ctx context.Context) error {
		var members []*github.User
		tmOptions := github.TeamListTeamMembersOptions{}
		resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
			tmOptions.ListOptions = *opts
			next, resp, err := client.Teams.ListTeamMembersBySlug(ctx, orgID, slug, &tmOptions)
			members = append(members, next...)
			return resp, err
		})
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching members of team %s in organization %s. %s", slug, orgID, err))
		}
		res = res[:0]
		for _, u := range members {
			res = append(res, u.GetLogin())
		}
		return nil
	})
	return res, err
}

func (g *Github) GetPerson(ctx context.Context, login string) (*model.Person, error) {
	client := g.client()
	var res *model.Person
	err := g.withRetry(ctx, "person", func(ctx context.Context) error {
		user, resp, err := client.Users.Get(ctx, login)
		if err != nil {
			return createError(resp, fmt.Errorf("Fetching user %s. %s", login, err))
		}
		res = &model.Person{
			Login: login,
			Name:  user.GetName(),
			Link:  user.GetHTMLURL(),
		}
		return nil
	})
	return res, err
}
