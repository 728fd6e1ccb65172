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

// Consumer receives one batch table at a time. A non-nil error terminates
// the stream and propagates to the caller.
type Consumer func(batch *Table) error

// StreamRows reads the tabular block in a file and emits batches of
// StreamOptions.BatchSize rows to consumer without materializing the whole
// table. Column names and types persist across batches, so every batch has
// the same schema; a schema expansion mid-stream carries into all later
// batches. A partial trailing batch is always flushed, and end-of-stream
// warnings are emitted once, after it.
func StreamRows(ctx context.Context, fs filesys.ReadableFS, path string, opts StreamOptions, consumer Consumer) ([]diag.Warning, error) {
	r, err := fs.OpenForRead(path)
	if err != nil {
		return nil, diag.ErrIO.New(err.Error())
	}
	defer r.Close()

	return streamRows(ctx, opts, path, r, consumer)
}

// StreamRowsFromText is StreamRows over an in-memory buffer.
func StreamRowsFromText(ctx context.Context, data []byte, opts StreamOptions, consumer Consumer) ([]diag.Warning, error) {
	return streamRows(ctx, opts, "", bytes.NewReader(data), consumer)
}

func streamRows(ctx context.Context, opts StreamOptions, file string, r io.Reader, consumer Consumer) ([]diag.Warning, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultStreamOptions().BatchSize
	}

	d := newDecoder(opts.Options, file, r)

	if err := d.findHeader(); err != nil {
		return d.warnings, err
	}
	if err := d.decodeRows(ctx, batchSize, consumer); err != nil {
		return d.warnings, err
	}
	if err := d.finish(); err != nil {
		return d.warnings, err
	}

	return d.warnings, nil
}
