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
package set

import (
	"encoding/json"
	"sort"
	"strings"
)

// Set is a collection of unique strings
type Set map[string]bool

// Empty creates an empty set
func Empty() Set {
	return make(map[string]bool)
}

// New creates a new set with the provided values
func New(keys ...string) Set {
	set := Empty()
	for _, k := range keys {
		set.Add(k)
	}
	return set
}

// NewFromList creates a new set by splitting a separated list,
// trimming whitespace and skipping empty entries.
func NewFromList(list string, sep string) Set {
	set := Empty()
	for _, k := range strings.Split(list, sep) {
		k = strings.TrimSpace(k)
		if k != "" {
			set.Add(k)
		}
	}
	return set
}

// Add inserts an element into the set
func (s Set) Add(key string) {
	s[key] = true
}

// AddAll inserts all elements into the set
func (s Set) AddAll(input Set) {
	for k := range input {
		s.Add(k)
	}
}

// Remove deletes an element from the set
func (s Set) Remove(key string) {
	delete(s, key)
}

// Contains tests whether an element is a member of the set
func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

func (s Set) Intersection(other Set) Set {
	var small, large Set
	if len(s) < len(other) {
		small, large = s, other
	} else {
		small, large = other, s
	}
	res := Empty()
	for k := range small {
		if large.Contains(k) {
			res.Add(k)
		}
	}
	return res
}

func (s Set) Keys() []string {
	l := len(s)
	if l == 0 {
		return nil
	}
	lst := make([]string, 0, l)
	for k := range s {
		lst = append(lst, k)
	}
	return lst
}

func (s Set) KeysSorted() []string {
	lst := s.Keys()
	sort.Strings(lst)
	return lst
}

func (s Set) Print(sep string) string {
	return strings.Join(s.KeysSorted(), sep)
}

func (s Set) MarshalJSON() ([]byte, error) {
	keys := s.KeysSorted()
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var keys []string
	err := json.Unmarshal(data, &keys)
	if err != nil {
		return err
	}
	*s = New(keys...)
	return nil
}
