package listing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-alfextract/pkg/alf"
)

func sampleDirectory() (*alf.Index, *alf.Directory) {
	idx := &alf.Index{Magic: "S5IC", Title: "テストタイトル", Variant: alf.VariantCompressedBase}
	dir := &alf.Directory{
		Variant: alf.VariantCompressedBase,
		Archives: []alf.Archive{
			{Name: "DATA1.ALF", Path: "game/DATA1.ALF", Ordinal: 0},
			{Name: "DATA2.ALF", Path: "game/DATA2.ALF", Ordinal: 1},
		},
		Queues: []alf.WorkQueue{
			{
				{Name: `bg\title.png`, Archive: 0, Index: 0, Offset: 0x1000, Length: 32},
				{Name: `bg\end.png`, Archive: 0, Index: 1, Offset: 0x100A, Length: 16},
			},
			nil,
		},
		Records: 5,
		Skipped: 3,
	}
	return idx, dir
}

func TestWrite(t *testing.T) {
	idx, dir := sampleDirectory()
	doc := NewDocument("game/SYS5INI.BIN", idx, dir, func(a alf.Archive) string {
		return "out/data/" + a.Stem()
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, "magic: S5IC")
	assert.Contains(t, out, "variant: compressed-base")
	assert.Contains(t, out, "offset: 0x0000100A")
	assert.Contains(t, out, "output: out/data/DATA1")

	// 読み戻して構造を確認
	var got Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "テストタイトル", got.Title)
	assert.Equal(t, 5, got.Records)
	assert.Equal(t, 3, got.Skipped)
	require.Len(t, got.Archives, 2)
	require.Len(t, got.Archives[0].Entries, 2)
	assert.Equal(t, `bg\title.png`, got.Archives[0].Entries[0].Name)
	assert.Equal(t, Hex(0x100A), got.Archives[0].Entries[1].Offset)
	assert.False(t, got.Archives[0].Unopened)
	assert.Empty(t, got.Archives[1].Entries)
	assert.True(t, got.Archives[1].Unopened)
	assert.Contains(t, out, "unopened: true")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWrite_Error(t *testing.T) {
	idx, dir := sampleDirectory()
	doc := NewDocument("SYS5INI.BIN", idx, dir, func(alf.Archive) string { return "" })

	err := Write(failingWriter{}, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.True(t, strings.Contains(err.Error(), "YAML"))
}
