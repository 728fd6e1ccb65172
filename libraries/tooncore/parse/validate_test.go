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

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

func TestValidateOK(t *testing.T) {
	result := Validate([]byte("a: 1\nb: \"two\"\n"), DefaultParseOptions())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidateInvalidNeverRaises(t *testing.T) {
	result := Validate([]byte("a: 1\n\tb: 2\n"), DefaultParseOptions())
	require.False(t, result.Valid)
	assert.Equal(t, "parse_error", result.Kind)
	assert.Contains(t, result.Message, "Tab")
	assert.Equal(t, 2, result.Line)
}

func TestValidateFileIOSurfacesSeparately(t *testing.T) {
	_, err := ValidateFile(filesys.EmptyInMemFS(), "missing.toon", DefaultParseOptions())
	require.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	fs := filesys.EmptyInMemFS()
	require.NoError(t, fs.WriteFile("good.toon", []byte("x: 1\n")))
	require.NoError(t, fs.WriteFile("bad.toon", []byte("\tx: 1\n")))

	result, err := ValidateFile(fs, "good.toon", DefaultParseOptions())
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateFile(fs, "bad.toon", DefaultParseOptions())
	require.NoError(t, err)
	require.False(t, result.Valid)
	assert.Equal(t, "bad.toon", result.File)
}
