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

package filesys

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// LocalFS is the machine's local filesystem.
var LocalFS = &localFS{}

type localFS struct{}

// OpenForRead opens a file for reading.
func (fs *localFS) OpenForRead(fp string) (io.ReadCloser, error) {
	r, err := os.Open(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open file %s", fp)
	}
	return r, nil
}

// ReadFile reads the entire contents of a file.
func (fs *localFS) ReadFile(fp string) ([]byte, error) {
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read file %s", fp)
	}
	return data, nil
}

// Exists will tell you if a file or directory with a given path already
// exists, and if it does is it a directory.
func (fs *localFS) Exists(path string) (exists bool, isDir bool) {
	stat, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, stat.IsDir()
}

// OpenForWrite opens a file for writing, truncating any existing file.
func (fs *localFS) OpenForWrite(fp string) (io.WriteCloser, error) {
	w, err := os.OpenFile(fp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0644))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open file for writing %s", fp)
	}
	return w, nil
}

// WriteFile writes the entire data buffer to a given file.
func (fs *localFS) WriteFile(fp string, data []byte) error {
	if err := os.WriteFile(fp, data, os.FileMode(0644)); err != nil {
		return errors.Wrapf(err, "cannot write file %s", fp)
	}
	return nil
}

// DeleteFile will delete a file at the given path.
func (fs *localFS) DeleteFile(path string) error {
	exists, isDir := fs.Exists(path)
	if !exists {
		return os.ErrNotExist
	}
	if isDir {
		return ErrIsDir
	}
	return os.Remove(path)
}
