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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrSet(t *testing.T) {
	s := NewStrSet([]string{"a", "b"})
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, 2, s.Size())

	s.Add("c", "c")
	assert.True(t, s.Contains("c"))
	assert.Equal(t, 3, s.Size())

	s.Remove("a")
	assert.False(t, s.Contains("a"))
	assert.Equal(t, []string{"b", "c"}, s.AsSlice())

	count := 0
	s.Iterate(func(string) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

func TestStrSetEmpty(t *testing.T) {
	s := NewStrSet(nil)
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(""))
}
