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

// Package filesys abstracts file access so readers and writers can run
// against the local disk or an in-memory filesystem in tests.
package filesys

import (
	"errors"
	"io"
)

var ErrIsDir = errors.New("operation not valid on a directory")
var ErrFileNotFound = errors.New("file not found")

// ReadableFS is an interface providing read access to objs in a filesystem.
type ReadableFS interface {
	// OpenForRead opens a file for reading.
	OpenForRead(fp string) (io.ReadCloser, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(fp string) ([]byte, error)

	// Exists will tell you if a file or directory with a given path already
	// exists, and if it does is it a directory.
	Exists(path string) (exists bool, isDir bool)
}

// WritableFS is an interface providing write access to objs in a filesystem.
type WritableFS interface {
	// OpenForWrite opens a file for writing. The file will be created if it
	// does not exist, and if it does exist it will be overwritten.
	OpenForWrite(fp string) (io.WriteCloser, error)

	// WriteFile writes the entire data buffer to a given file. The file will
	// be created if it does not exist, and if it does exist it will be
	// overwritten.
	WriteFile(fp string, data []byte) error

	// DeleteFile will delete a file at the given path.
	DeleteFile(path string) error
}

// ReadWriteFS is an interface whose implementors provide both read and write
// access.
type ReadWriteFS interface {
	ReadableFS
	WritableFS
}
