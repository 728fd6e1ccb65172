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

package iohelp

import "io"

var newLineBytes = []byte("\n")

// WriteLine writes a string to a writer followed by a line feed.
func WriteLine(w io.Writer, line string) error {
	if err := WriteAll(w, []byte(line)); err != nil {
		return err
	}
	return WriteAll(w, newLineBytes)
}

// WriteAll writes every byte slice in its entirety, returning the first error
// encountered.
func WriteAll(w io.Writer, dataSlices ...[]byte) error {
	for _, data := range dataSlices {
		for len(data) > 0 {
			n, err := w.Write(data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
	}
	return nil
}
