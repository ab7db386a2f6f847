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
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotLogins(t *testing.T) {
	snap := &Snapshot{
		Members: []string{"alice", "bob"},
		Memberships: map[string]*Membership{
			"alice": {Login: "alice", Role: RoleAdmin},
			"bob":   {Login: "bob", Role: RoleMember},
		},
	}
	assert.True(t, snap.MemberLogins().Contains("alice"))
	assert.True(t, snap.MemberLogins().Contains("bob"))
	assert.Equal(t, []string{"alice"}, snap.AdminLogins().KeysSorted())
}

func TestTeamsForPersonOnRepo(t *testing.T) {
	backend := &Team{ID: 1, Slug: "backend", Permission: PermPush}
	ops := &Team{ID: 2, Slug: "ops", Permission: PermAdmin}
	design := &Team{ID: 3, Slug: "design", Permission: PermPull}
	snap := &Snapshot{
		RepoTeams: map[string][]*Team{
			"promptworks/widget": {ops, backend, design},
		},
		TeamsPerLogin: map[string][]*Team{
			"alice": {{ID: 1, Slug: "backend"}, {ID: 3, Slug: "design"}},
		},
	}

	got := snap.TeamsForPersonOnRepo("alice", "promptworks/widget")
	assert.Len(t, got, 2)
	// repo-team order, not user-team order
	assert.Equal(t, "backend", got[0].Slug)
	assert.Equal(t, "design", got[1].Slug)

	assert.Empty(t, snap.TeamsForPersonOnRepo("nobody", "promptworks/widget"))
	assert.Empty(t, snap.TeamsForPersonOnRepo("alice", "promptworks/unknown"))
}
