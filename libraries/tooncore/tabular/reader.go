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

package tabular

import (
	"bytes"
	"context"
	"io"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// ReadTable parses the tabular block in a file into a Table. No partial
// table is returned on error or cancellation.
func ReadTable(ctx context.Context, fs filesys.ReadableFS, path string, opts Options) (*Table, []diag.Warning, error) {
	r, err := fs.OpenForRead(path)
	if err != nil {
		return nil, nil, diag.ErrIO.New(err.Error())
	}
	defer r.Close()

	return decodeTable(ctx, opts, path, r)
}

// FromText parses the tabular block in a byte buffer into a Table.
func FromText(ctx context.Context, data []byte, opts Options) (*Table, []diag.Warning, error) {
	return decodeTable(ctx, opts, "", bytes.NewReader(data))
}

func decodeTable(ctx context.Context, opts Options, file string, r io.Reader) (*Table, []diag.Warning, error) {
	d := newDecoder(opts, file, r)

	if err := d.findHeader(); err != nil {
		return nil, d.warnings, err
	}
	if err := d.decodeRows(ctx, 0, nil); err != nil {
		return nil, d.warnings, err
	}
	if err := d.finish(); err != nil {
		return nil, d.warnings, err
	}

	return d.finalizeBatch(), d.warnings, nil
}
