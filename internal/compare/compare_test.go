package compare

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairValidation(t *testing.T) {
	var p Pair
	assert.True(t, p.SetLeft(""))
	assert.True(t, p.SetLeft("   "))
	assert.Empty(t, p.LeftErr)

	assert.False(t, p.SetLeft(`{"a":`))
	assert.NotEmpty(t, p.LeftErr)
	assert.Equal(t, `{"a":`, p.Left, "invalid text is still stored")

	assert.True(t, p.SetRight(`[1]`))
	assert.Empty(t, p.RightErr)
	assert.NotEmpty(t, p.LeftErr, "sides are validated independently")
	assert.False(t, p.Ready())

	p.SetLeft(`[2]`)
	assert.True(t, p.Ready())

	p.Clear()
	assert.Equal(t, Pair{}, p)
	assert.False(t, p.Ready())
}

func TestPairFormatBoth(t *testing.T) {
	var p Pair
	p.SetLeft(`{"a":1,"b":[1,2]}`)
	p.SetRight(`{"a":`)
	p.FormatBoth()
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", p.Left)
	assert.Equal(t, `{"a":`, p.Right)
}

func TestDiffFlagsChangedLine(t *testing.T) {
	var p Pair
	p.SetLeft(`{"a":1}`)
	p.SetRight(`{"a":2}`)
	require.True(t, p.Ready())

	lines := p.Diff()
	changed := Changed(lines)
	require.Len(t, changed, 2)
	for _, l := range changed {
		assert.Contains(t, l.Text, `"a"`)
	}
	assert.Equal(t, Delete, changed[0].Op)
	assert.Equal(t, `  "a": 1`, changed[0].Text)
	assert.Equal(t, Insert, changed[1].Op)
	assert.Equal(t, `  "a": 2`, changed[1].Text)
	assert.Equal(t, `{"a":1}`, p.Left, "diffing does not reformat the buffers")

	assert.Equal(t, Stats{Added: 1, Removed: 1, Unchanged: 2}, p.Stats())
}

func TestLinesNumbers(t *testing.T) {
	lines := Lines("a\nb\nc", "a\nc\nd\n")
	want := []Line{
		{Op: Equal, LeftNo: 1, RightNo: 1, Text: "a"},
		{Op: Delete, LeftNo: 2, Text: "b"},
		{Op: Equal, LeftNo: 3, RightNo: 2, Text: "c"},
		{Op: Insert, RightNo: 3, Text: "d"},
	}
	assert.Equal(t, want, lines)
	assert.True(t, Count(Lines("x", "x")).Identical())
	assert.Empty(t, Lines("", ""))
}

func TestUnified(t *testing.T) {
	var p Pair
	p.SetLeft(`[1]`)
	p.SetRight(`[2]`)
	assert.Equal(t, " [\n-  1\n+  2\n ]\n", p.Unified())
}

func TestRowsPairsModifications(t *testing.T) {
	rows := Rows(Lines("a\nb\nc\n", "a\nB\nc\nd\n"))
	require.Len(t, rows, 4)
	assert.Equal(t, Side{No: 2, Text: "b", Op: Delete}, rows[1].Left)
	assert.Equal(t, Side{No: 2, Text: "B", Op: Insert}, rows[1].Right)
	assert.Equal(t, Side{}, rows[3].Left)
	assert.Equal(t, Side{No: 4, Text: "d", Op: Insert}, rows[3].Right)
}

func TestSplit(t *testing.T) {
	out := Split(Lines("short\n", strings.Repeat("y", 60)+"\n"), 40)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "│")
	assert.Contains(t, out[0], "- short")
	assert.Contains(t, out[0], "…")
}

func TestMergePatchAndEquivalent(t *testing.T) {
	patch, err := MergePatch(`{"a":1,"b":2}`, `{"a":3}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(patch))

	_, err = MergePatch(`{`, `{}`)
	assert.ErrorContains(t, err, "original")

	var p Pair
	p.SetLeft(`{"a":1,"b":[1,2]}`)
	p.SetRight("{\n  \"b\": [1, 2],\n  \"a\": 1\n}")
	same, err := p.Equivalent()
	require.NoError(t, err)
	assert.True(t, same)

	p.SetRight(`{"a":1}`)
	same, err = p.Equivalent()
	require.NoError(t, err)
	assert.False(t, same)
}

func TestWriteUnified(t *testing.T) {
	var buf bytes.Buffer
	lines := Lines("a\nb\n", "a\nc\n")
	require.NoError(t, WriteUnified(&buf, lines, "left.json", "right.json", false, NewPalette(false)))
	assert.Equal(t, "--- left.json\n+++ right.json\n a\n-b\n+c\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteUnified(&buf, lines, "l", "r", true, NewPalette(false)))
	assert.Equal(t, "--- l\n+++ r\n-b\n+c\n", buf.String())
}
