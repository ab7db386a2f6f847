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

// Package cache provides the durable response cache. Entries persist
// until the backing file is deleted; there is no TTL and no eviction.
// Deleting the file only costs re-fetch time, never correctness.
package cache

import (
	"errors"

	kcache "github.com/koding/cache"
)

type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

var ErrNotFound = errors.New("cache: key not found")

type memory struct {
	store kcache.Cache
}

// NewMemory returns a process-lifetime in-memory cache.
func NewMemory() Cache {
	return &memory{store: kcache.NewMemoryNoTS()}
}

func (m *memory) Get(key string) ([]byte, error) {
	v, err := m.store.Get(key)
	if err != nil {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (m *memory) Set(key string, value []byte) error {
	return m.store.Set(key, value)
}

type layered struct {
	front Cache
	back  Cache
}

// Layered checks front before back and backfills front on a back hit.
// Writes go to both layers, back first so a durable write failure is
// not masked by the memory layer.
func Layered(front, back Cache) Cache {
	return &layered{front: front, back: back}
}

func (l *layered) Get(key string) ([]byte, error) {
	v, err := l.front.Get(key)
	if err == nil {
		return v, nil
	}
	v, err = l.back.Get(key)
	if err != nil {
		return nil, err
	}
	// backfill failure only costs the next lookup a trip to the back
	_ = l.front.Set(key, v)
	return v, nil
}

func (l *layered) Set(key string, value []byte) error {
	if err := l.back.Set(key, value); err != nil {
		return err
	}
	return l.front.Set(key, value)
}
