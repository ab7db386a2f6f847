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

	"github.com/franela/goblin"
)

func TestPerm(t *testing.T) {

	g := goblin.Goblin(t)

	g.Describe("Default permission mapping", func() {

		g.It("Should map all four documented levels", func() {
			p, err := DefaultPerms("admin")
			g.Assert(err == nil).IsTrue()
			g.Assert(p).Equal(Perm{Admin: true, Push: true, Pull: true})

			p, err = DefaultPerms("write")
			g.Assert(err == nil).IsTrue()
			g.Assert(p).Equal(Perm{Admin: false, Push: true, Pull: true})

			p, err = DefaultPerms("read")
			g.Assert(err == nil).IsTrue()
			g.Assert(p).Equal(Perm{Admin: false, Push: false, Pull: true})

			p, err = DefaultPerms("none")
			g.Assert(err == nil).IsTrue()
			g.Assert(p).Equal(Perm{})
		})

		g.It("Should reject any other value", func() {
			_, err := DefaultPerms("maintain")
			g.Assert(err != nil).IsTrue()
			_, err = DefaultPerms("")
			g.Assert(err != nil).IsTrue()
		})
	})

	g.Describe("Permission rank", func() {

		g.It("Should order admin before push before pull", func() {
			a, _ := PermRank(PermAdmin)
			w, _ := PermRank(PermPush)
			r, _ := PermRank(PermPull)
			g.Assert(a < w).IsTrue()
			g.Assert(w < r).IsTrue()
		})

		g.It("Should reject unknown levels", func() {
			_, err := PermRank("maintain")
			g.Assert(err != nil).IsTrue()
		})
	})

	g.Describe("Perm", func() {

		g.It("Should compare all three flags", func() {
			g.Assert(Perm{Push: true, Pull: true}.Equal(Perm{Push: true, Pull: true})).IsTrue()
			g.Assert(Perm{Push: true, Pull: true}.Equal(Perm{Push: true})).IsFalse()
		})

		g.It("Should report the highest flag", func() {
			g.Assert(Perm{Admin: true, Push: true, Pull: true}.Highest()).Equal("admin")
			g.Assert(Perm{Push: true, Pull: true}.Highest()).Equal("push")
			g.Assert(Perm{Pull: true}.Highest()).Equal("pull")
			g.Assert(Perm{}.Highest()).Equal("")
		})
	})
}
