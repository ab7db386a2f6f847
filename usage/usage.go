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
package usage

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

var lock = sync.Mutex{}

var data = make(map[string]int)

// RecordApiRequest counts one upstream request per operation name.
// Cache hits never reach this counter, which makes the log a cheap
// view of what a run actually cost.
func RecordApiRequest(op string) {
	lock.Lock()
	data[op]++
	lock.Unlock()
}

func GetStats() map[string]int {
	stats := make(map[string]int)
	lock.Lock()
	for k, v := range data {
		stats[k] = v
	}
	lock.Unlock()
	return stats
}

func WriteLog() {
	lock.Lock()
	defer lock.Unlock()
	if len(data) == 0 {
		log.Info("No API requests performed, run served entirely from cache")
		return
	}
	log.Info("API requests performed this run")
	for k, v := range data {
		log.Infof("Remote request %s : %d requests", k, v)
	}
}
