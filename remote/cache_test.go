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
	"errors"
	"testing"

	"github.com/promptworks/github-org-repo-access-report/cache"
	"github.com/promptworks/github-org-repo-access-report/model"

	"github.com/franela/goblin"
	"github.com/stretchr/testify/mock"
)

type MockRemote struct {
	Remote
	mock.Mock
}

func (mr *MockRemote) GetOrg(c context.Context, orgID string) (*model.Org, error) {
	args := mr.Called(orgID)
	org, _ := args.Get(0).(*model.Org)
	return org, args.Error(1)
}

func (mr *MockRemote) GetCollaborators(c context.Context, owner string, name string) ([]*model.Collaborator, error) {
	args := mr.Called(owner, name)
	collabs, _ := args.Get(0).([]*model.Collaborator)
	return collabs, args.Error(1)
}

func (mr *MockRemote) GetPerson(c context.Context, login string) (*model.Person, error) {
	args := mr.Called(login)
	person, _ := args.Get(0).(*model.Person)
	return person, args.Error(1)
}

func (mr *MockRemote) GetTeamMembers(c context.Context, orgID string, slug string) ([]string, error) {
	args := mr.Called(orgID, slug)
	members, _ := args.Get(0).([]string)
	return members, args.Error(1)
}

func TestCachedRemote(t *testing.T) {

	g := goblin.Goblin(t)

	g.Describe("Cached remote", func() {

		var c context.Context
		var r *MockRemote
		var cr *CachedRemote

		g.BeforeEach(func() {
			c = context.Background()
			r = &MockRemote{}
			cr = Cached(r, cache.NewMemory())
		})

		g.It("Should call upstream once for identical calls", func() {
			r.On("GetOrg", "promptworks").Return(fakeOrg, nil).Once()

			org, err := cr.GetOrg(c, "promptworks")
			g.Assert(err == nil).IsTrue()
			g.Assert(org.Login).Equal(fakeOrg.Login)

			org, err = cr.GetOrg(c, "promptworks")
			g.Assert(err == nil).IsTrue()
			g.Assert(org.Login).Equal(fakeOrg.Login)
			g.Assert(org.DefaultRepoPermission).Equal(fakeOrg.DefaultRepoPermission)

			r.AssertExpectations(t)
		})

		g.It("Should keep distinct arguments distinct", func() {
			r.On("GetCollaborators", "promptworks", "widget").Return(fakeCollabs, nil).Once()
			r.On("GetCollaborators", "promptworks", "gadget").Return([]*model.Collaborator(nil), nil).Once()

			collabs, err := cr.GetCollaborators(c, "promptworks", "widget")
			g.Assert(err == nil).IsTrue()
			g.Assert(len(collabs)).Equal(2)

			collabs, err = cr.GetCollaborators(c, "promptworks", "gadget")
			g.Assert(err == nil).IsTrue()
			g.Assert(len(collabs)).Equal(0)

			r.AssertExpectations(t)
		})

		g.It("Should preserve permission sets through the cache", func() {
			r.On("GetCollaborators", "promptworks", "widget").Return(fakeCollabs, nil).Once()

			cr.GetCollaborators(c, "promptworks", "widget")
			collabs, err := cr.GetCollaborators(c, "promptworks", "widget")
			g.Assert(err == nil).IsTrue()
			g.Assert(collabs[0].Perm).Equal(model.Perm{Admin: true, Push: true, Pull: true})
			g.Assert(collabs[1].Perm).Equal(model.Perm{Push: true, Pull: true})

			r.AssertExpectations(t)
		})

		g.It("Should key team member lookups by org and slug", func() {
			r.On("GetTeamMembers", "promptworks", "backend").Return([]string{"alice", "bob"}, nil).Once()
			r.On("GetTeamMembers", "promptworks", "ops").Return([]string{"alice"}, nil).Once()

			members, err := cr.GetTeamMembers(c, "promptworks", "backend")
			g.Assert(err == nil).IsTrue()
			g.Assert(len(members)).Equal(2)

			members, err = cr.GetTeamMembers(c, "promptworks", "ops")
			g.Assert(err == nil).IsTrue()
			g.Assert(len(members)).Equal(1)

			members, err = cr.GetTeamMembers(c, "promptworks", "backend")
			g.Assert(err == nil).IsTrue()
			g.Assert(members).Equal([]string{"alice", "bob"})

			r.AssertExpectations(t)
		})

		g.It("Should not cache failures", func() {
			r.On("GetPerson", "octocat").Return(nil, fakeErr).Once()
			r.On("GetPerson", "octocat").Return(fakePerson, nil).Once()

			_, err := cr.GetPerson(c, "octocat")
			g.Assert(err).Equal(fakeErr)

			person, err := cr.GetPerson(c, "octocat")
			g.Assert(err == nil).IsTrue()
			g.Assert(person.Login).Equal("octocat")

			r.AssertExpectations(t)
		})
	})
}

var (
	fakeErr = errors.New("Not Found")
	fakeOrg = &model.Org{
		Login:                 "promptworks",
		Name:                  "PromptWorks",
		DefaultRepoPermission: "write",
	}
	fakePerson  = &model.Person{Login: "octocat", Name: "The Octocat"}
	fakeCollabs = []*model.Collaborator{
		{Login: "alice", Perm: model.Perm{Admin: true, Push: true, Pull: true}},
		{Login: "bob", Perm: model.Perm{Push: true, Pull: true}},
	}
)
