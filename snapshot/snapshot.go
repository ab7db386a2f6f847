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

// Package snapshot assembles the complete audit snapshot from the
// remote system. Any failed stage aborts the whole build, a partial
// snapshot could produce a misleading all-clear report.
package snapshot

import (
	"context"
	"sort"
	"sync"

	"github.com/promptworks/github-org-repo-access-report/model"
	"github.com/promptworks/github-org-repo-access-report/remote"
	"github.com/promptworks/github-org-repo-access-report/set"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Build fetches every entity the audit needs and computes the derived
// indices. Fan-out stages run up to concurrency requests at a time.
func Build(ctx context.Context, r remote.Remote, orgID string, concurrency int) (*model.Snapshot, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	log.Info("Fetching org...")
	org, err := r.GetOrg(ctx, orgID)
	if err != nil {
		return nil, errors.Wrap(err, "org fetch")
	}

	defaultPerm, err := model.DefaultPerms(org.DefaultRepoPermission)
	if err != nil {
		return nil, errors.Wrap(err, "org default permission")
	}

	log.Info("Fetching org members...")
	members, err := r.GetOrgMembers(ctx, orgID)
	if err != nil {
		return nil, errors.Wrap(err, "member fetch")
	}

	log.Info("Fetching org memberships...")
	memberships := make(map[string]*model.Membership, len(members))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, login := range members {
		login := login
		g.Go(func() error {
			m, err := r.GetMembership(gctx, orgID, login)
			if err != nil {
				return err
			}
			mu.Lock()
			memberships[login] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "membership fetch")
	}

	// teams and repos have no ordering dependency on each other
	var teams []*model.Team
	var repos []*model.Repo
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Fetching teams...")
		var err error
		teams, err = r.GetOrgTeams(gctx, orgID)
		return err
	})
	g.Go(func() error {
		log.Info("Fetching repos...")
		var err error
		repos, err = r.GetOrgRepos(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "team and repo fetch")
	}

	log.Info("Fetching collaborators...")
	collaborators := make(map[string][]*model.Collaborator, len(repos))
	repoTeams := make(map[string][]*model.Team, len(repos))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, repo := range repos {
		repo := repo
		g.Go(func() error {
			collabs, err := r.GetCollaborators(gctx, repo.Owner, repo.Name)
			if err != nil {
				return err
			}
			mu.Lock()
			collaborators[repo.Slug] = collabs
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			ts, err := r.GetRepoTeams(gctx, repo.Owner, repo.Name)
			if err != nil {
				return err
			}
			mu.Lock()
			repoTeams[repo.Slug] = ts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "collaborator fetch")
	}

	log.Info("Fetching team members...")
	teamMembers := make(map[int64][]string, len(teams))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, team := range teams {
		team := team
		g.Go(func() error {
			logins, err := r.GetTeamMembers(gctx, orgID, team.Slug)
			if err != nil {
				return err
			}
			mu.Lock()
			teamMembers[team.ID] = logins
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "team member fetch")
	}

	// every repo appears in the result, empty list included
	for _, repo := range repos {
		if collaborators[repo.Slug] == nil {
			collaborators[repo.Slug] = []*model.Collaborator{}
		}
		sorted, err := sortTeamsByRank(repoTeams[repo.Slug])
		if err != nil {
			return nil, errors.Wrapf(err, "teams of %s", repo.Slug)
		}
		repoTeams[repo.Slug] = sorted
	}

	logins := distinctLogins(members, collaborators, teamMembers)

	log.Info("Fetching user info...")
	people := make(map[string]*model.Person, len(logins))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, login := range logins.Keys() {
		login := login
		g.Go(func() error {
			p, err := r.GetPerson(gctx, login)
			if err != nil {
				return err
			}
			mu.Lock()
			people[login] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "user fetch")
	}

	return &model.Snapshot{
		Org:           org,
		DefaultPerm:   defaultPerm,
		Repos:         repos,
		Members:       members,
		Memberships:   memberships,
		Teams:         teams,
		Collaborators: collaborators,
		RepoTeams:     repoTeams,
		TeamsPerLogin: teamsPerLogin(teams, teamMembers),
		People:        people,
	}, nil
}

// distinctLogins collects every login the audit references, so each
// profile is fetched exactly once no matter how many repos and teams
// mention it.
func distinctLogins(members []string, collaborators map[string][]*model.Collaborator, teamMembers map[int64][]string) set.Set {
	logins := set.New(members...)
	for _, collabs := range collaborators {
		for _, c := range collabs {
			logins.Add(c.Login)
		}
	}
	for _, list := range teamMembers {
		for _, login := range list {
			logins.Add(login)
		}
	}
	return logins
}

func teamsPerLogin(teams []*model.Team, teamMembers map[int64][]string) map[string][]*model.Team {
	mapping := make(map[string][]*model.Team)
	for _, team := range teams {
		for _, login := range teamMembers[team.ID] {
			mapping[login] = append(mapping[login], team)
		}
	}
	return mapping
}

func sortTeamsByRank(teams []*model.Team) ([]*model.Team, error) {
	ranks := make(map[int64]int, len(teams))
	for _, t := range teams {
		rank, err := model.PermRank(t.Permission)
		if err != nil {
			return nil, err
		}
		ranks[t.ID] = rank
	}
	sorted := append([]*model.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ranks[sorted[i].ID] < ranks[sorted[j].ID]
	})
	return sorted, nil
}
