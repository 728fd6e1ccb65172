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
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

func tenRowInput() string {
	var sb strings.Builder
	sb.WriteString("[10]{id,name}:\n")
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&sb, "  %d, \"row%d\"\n", i, i)
	}
	return sb.String()
}

func TestStreamRowsBatchSizes(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.BatchSize = 3

	var batches []*Table
	warnings, err := StreamRowsFromText(context.Background(), []byte(tenRowInput()), opts, func(batch *Table) error {
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, batches, 4)
	sizes := []int{batches[0].NumRows(), batches[1].NumRows(), batches[2].NumRows(), batches[3].NumRows()}
	assert.Equal(t, []int{3, 3, 3, 1}, sizes)

	// Column names and types are identical across batches.
	for _, batch := range batches {
		assert.Equal(t, []string{"id", "name"}, batch.Names())
		assert.Equal(t, IntegerType, batch.Column("id").Type)
		assert.Equal(t, StringType, batch.Column("name").Type)
	}
}

func TestStreamingEquivalence(t *testing.T) {
	input := []byte(tenRowInput())

	full, _, err := FromText(context.Background(), input, DefaultOptions())
	require.NoError(t, err)

	for _, batchSize := range []int{1, 2, 3, 7, 10, 100} {
		opts := DefaultStreamOptions()
		opts.BatchSize = batchSize

		var batches []*Table
		_, err := StreamRowsFromText(context.Background(), input, opts, func(batch *Table) error {
			batches = append(batches, batch)
			return nil
		})
		require.NoError(t, err)

		combined := Concat(batches...)
		require.Equal(t, full.NumRows(), combined.NumRows(), "batch size %d", batchSize)
		require.Equal(t, full.Names(), combined.Names(), "batch size %d", batchSize)
		for i := range full.Cols {
			assert.Equal(t, full.Cols[i], combined.Cols[i], "batch size %d, column %s", batchSize, full.Cols[i].Name)
		}
	}
}

func TestStreamRowsConsumerErrorPropagates(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.BatchSize = 2

	boom := errors.New("boom")
	calls := 0
	_, err := StreamRowsFromText(context.Background(), []byte(tenRowInput()), opts, func(batch *Table) error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestStreamRowsSchemaExpansionPersists(t *testing.T) {
	input := "[4]{a}:\n  1\n  2, 9\n  3\n  4\n"

	opts := DefaultStreamOptions()
	opts.BatchSize = 2

	var batches []*Table
	warnings, err := StreamRowsFromText(context.Background(), []byte(input), opts, func(batch *Table) error {
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, batches, 2)
	// The expansion happened in the first batch and persists afterwards.
	assert.Equal(t, []string{"a", "V2"}, batches[0].Names())
	assert.Equal(t, []string{"a", "V2"}, batches[1].Names())
	assert.Equal(t, []bool{true, true}, batches[1].Column("V2").NA)

	require.Len(t, warnings, 1)
	assert.Equal(t, diag.WarnRaggedRows, warnings[0].Category)
}

func TestStreamRowsWarningsAfterFinalBatch(t *testing.T) {
	input := "[9]{a}:\n  1\n  2\n  3\n"

	opts := DefaultStreamOptions()
	opts.BatchSize = 2

	var batchesSeen int
	warnings, err := StreamRowsFromText(context.Background(), []byte(input), opts, func(batch *Table) error {
		batchesSeen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, batchesSeen)

	require.Len(t, warnings, 1)
	assert.Equal(t, diag.WarnNMismatch, warnings[0].Category)
	assert.Contains(t, warnings[0].Message, "Declared [9]")
}

func TestStreamRowsFromFS(t *testing.T) {
	fs := filesys.EmptyInMemFS()
	require.NoError(t, fs.WriteFile("rows.toon", []byte(tenRowInput())))

	opts := DefaultStreamOptions()
	opts.BatchSize = 4

	total := 0
	_, err := StreamRows(context.Background(), fs, "rows.toon", opts, func(batch *Table) error {
		total += batch.NumRows()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}
