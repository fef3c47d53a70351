package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleLayout = `
sheet: People
columns:
  - header: ID
    field: id
    width: 8
  - header: Full Name
    field: full_name
    width: 30
  - header: Email
    field: email
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(sampleLayout))
	require.NoError(t, err)
	assert.Equal(t, "People", l.Sheet)
	require.Len(t, l.Columns, 3)
	assert.Equal(t, "Full Name", l.Columns[1].Header)
	assert.Equal(t, "full_name", l.Columns[1].Field)
	assert.Equal(t, 30.0, l.Columns[1].Width)
}

func TestParseLayoutInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not yaml", ":\n  - ["},
		{"missing sheet", "columns:\n  - {header: ID, field: id}"},
		{"no columns", "sheet: People"},
		{"column without header", "sheet: People\ncolumns:\n  - {field: id}"},
		{"column without field", "sheet: People\ncolumns:\n  - {header: ID}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestLayoutWrite(t *testing.T) {
	l, err := ParseLayout([]byte(sampleLayout))
	require.NoError(t, err)

	rows := []Row{
		{"id": 1, "full_name": "Ada Lovelace", "email": "ada@example.com"},
		{"id": 2, "full_name": "Grace Hopper"},
	}

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"People"}, f.GetSheetList())

	got, err := f.GetRows("People")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ID", "Full Name", "Email"}, got[0])
	assert.Equal(t, "Ada Lovelace", got[1][1])
	assert.Equal(t, "ada@example.com", got[1][2])

	// Missing fields leave the cell empty. Trailing empty cells may be
	// trimmed by the reader.
	assert.Equal(t, "Grace Hopper", got[2][1])
	if len(got[2]) > 2 {
		assert.Empty(t, got[2][2])
	}
}

func TestLayoutWriteEmpty(t *testing.T) {
	l, err := ParseLayout([]byte(sampleLayout))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("People")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"ID", "Full Name", "Email"}, got[0])
}
