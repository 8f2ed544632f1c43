package model1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	cols := Columns{
		{Label: "ID", Accessor: "id"},
		{Label: "Name", Accessor: "name"},
	}
	rows := Rows{
		{"id": float64(1), "name": `Al "the" pha`},
		{"id": float64(2), "name": nil},
	}

	uu := map[string]struct {
		opts CSVOptions
		e    string
	}{
		"plain": {
			e: "\"ID\",\"Name\"\n\"1\",\"Al \"\"the\"\" pha\"\n\"2\",\"\"",
		},
		"full": {
			opts: CSVOptions{
				Checkbox:   true,
				Actions:    true,
				IsSelected: func(i int, _ Row) bool { return i == 1 },
			},
			e: "\"Selected\",\"ID\",\"Name\",\"Actions\"\n" +
				"\"No\",\"1\",\"Al \"\"the\"\" pha\",\"\"\n" +
				"\"Yes\",\"2\",\"\",\"\"",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var buff bytes.Buffer
			require.NoError(t, WriteCSV(&buff, cols, rows, u.opts))
			assert.Equal(t, u.e, buff.String())
		})
	}
}

func TestWriteCSVShape(t *testing.T) {
	cols := Columns{{Label: "A", Accessor: "a"}, {Label: "B", Accessor: "b"}, {Label: "C", Accessor: "c"}}
	rows := make(Rows, 0, 7)
	for i := range 7 {
		rows = append(rows, Row{"a": i, "b": "x", "c": true})
	}

	var buff bytes.Buffer
	require.NoError(t, WriteCSV(&buff, cols, rows, CSVOptions{Checkbox: true, Actions: true}))

	lines := strings.Split(buff.String(), "\n")
	assert.Len(t, lines, len(rows)+1)
	for _, l := range lines[1:] {
		assert.Len(t, strings.Split(l, ","), len(cols)+2)
		assert.True(t, strings.HasPrefix(l, `"`))
		assert.True(t, strings.HasSuffix(l, `"`))
	}
}
