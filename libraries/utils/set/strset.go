// Copyright 2025 Toonlite Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package set

import "sort"

var emptyInstance = struct{}{}

// StrSet is a set of strings.
type StrSet struct {
	items map[string]struct{}
}

// NewStrSet creates a set from a list of strings.
func NewStrSet(items []string) *StrSet {
	s := &StrSet{make(map[string]struct{}, len(items))}

	for _, item := range items {
		s.items[item] = emptyInstance
	}

	return s
}

// Add adds new items to the set.
func (s *StrSet) Add(items ...string) {
	for _, item := range items {
		s.items[item] = emptyInstance
	}
}

// Remove removes existing items from the set.
func (s *StrSet) Remove(items ...string) {
	for _, item := range items {
		delete(s.items, item)
	}
}

// Contains returns true if the item being checked is already in the set.
func (s *StrSet) Contains(item string) bool {
	_, present := s.items[item]
	return present
}

// Size returns the number of unique elements in the set.
func (s *StrSet) Size() int {
	return len(s.items)
}

// AsSlice converts the set to a slice, sorted so iteration order is stable.
func (s *StrSet) AsSlice() []string {
	items := make([]string, 0, len(s.items))
	for item := range s.items {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Iterate accesses each item in the set, calling the given callback. Iteration
// stops when the callback returns false.
func (s *StrSet) Iterate(callBack func(string) (cont bool)) {
	for item := range s.items {
		if !callBack(item) {
			break
		}
	}
}
