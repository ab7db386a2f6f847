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
package audit

import (
	"testing"

	"github.com/promptworks/github-org-repo-access-report/model"
	"github.com/promptworks/github-org-repo-access-report/set"

	"github.com/franela/goblin"
)

func writeDefaultSnapshot(collaborators map[string][]*model.Collaborator) *model.Snapshot {
	var repos []*model.Repo
	for slug := range collaborators {
		repos = append(repos, &model.Repo{Slug: slug})
	}
	return &model.Snapshot{
		Org:         &model.Org{Login: "promptworks", DefaultRepoPermission: "write"},
		DefaultPerm: model.Perm{Push: true, Pull: true},
		Repos:       repos,
		Members:     []string{"member", "elevated"},
		Memberships: map[string]*model.Membership{
			"member":   {Login: "member", Role: model.RoleMember},
			"elevated": {Login: "elevated", Role: model.RoleMember},
		},
		Collaborators: collaborators,
	}
}

func TestAudit(t *testing.T) {

	g := goblin.Goblin(t)

	g.Describe("Reconciliation", func() {

		g.It("Should accept a member with exactly the default permissions", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "member", Perm: model.Perm{Push: true, Pull: true}},
				},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(len(flagged["promptworks/x"])).Equal(0)
		})

		g.It("Should flag a member elevated beyond the default", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "elevated", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
				},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(len(flagged["promptworks/x"])).Equal(1)
			g.Assert(flagged["promptworks/x"][0].Login).Equal("elevated")
		})

		g.It("Should flag a member with reduced permissions", func() {
			// default write is {push, pull}; missing pull must flag
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "member", Perm: model.Perm{Push: true}},
				},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(len(flagged["promptworks/x"])).Equal(1)
		})

		g.It("Should always flag outside collaborators", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/y": {
					{Login: "outsider", Perm: model.Perm{Pull: true}},
				},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(len(flagged["promptworks/y"])).Equal(1)
			g.Assert(flagged["promptworks/y"][0].Login).Equal("outsider")
		})

		g.It("Should accept an allow-listed admin with admin rights only", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/z": {
					{Login: "boss", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
				},
				"promptworks/w": {
					{Login: "boss", Perm: model.Perm{Push: true, Pull: true}},
				},
			})
			flagged := New(snap, set.New("boss")).Unexpected()
			g.Assert(len(flagged["promptworks/z"])).Equal(0)
			// same login without the admin flag is still suspect
			g.Assert(len(flagged["promptworks/w"])).Equal(1)
		})

		g.It("Should key clean repos with an empty list", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/empty": {},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			lst, ok := flagged["promptworks/empty"]
			g.Assert(ok).IsTrue()
			g.Assert(len(lst)).Equal(0)
		})

		g.It("Should preserve API response order", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "zed", Perm: model.Perm{Pull: true}},
					{Login: "amy", Perm: model.Perm{Pull: true}},
				},
			})
			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(flagged["promptworks/x"][0].Login).Equal("zed")
			g.Assert(flagged["promptworks/x"][1].Login).Equal("amy")
		})

		g.It("Should flag exactly the complement of the two oracles", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "member", Perm: model.Perm{Push: true, Pull: true}},
					{Login: "elevated", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
					{Login: "boss", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
					{Login: "outsider", Perm: model.Perm{Pull: true}},
				},
			})
			a := New(snap, set.New("boss"))
			flagged := a.Unexpected()
			for _, c := range snap.Collaborators["promptworks/x"] {
				expected := a.IsLegitimateAdmin(c) || a.IsOrgMemberWithDefaultPermissions(c)
				found := false
				for _, f := range flagged["promptworks/x"] {
					if f.Login == c.Login {
						found = true
					}
				}
				g.Assert(found).Equal(!expected)
			}
		})

		g.It("Should fall back to role-derived admins without an allow-list", func() {
			snap := writeDefaultSnapshot(map[string][]*model.Collaborator{
				"promptworks/x": {
					{Login: "owner", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
				},
			})
			snap.Members = append(snap.Members, "owner")
			snap.Memberships["owner"] = &model.Membership{Login: "owner", Role: model.RoleAdmin}

			flagged := New(snap, set.Empty()).Unexpected()
			g.Assert(len(flagged["promptworks/x"])).Equal(0)
		})
	})
}
