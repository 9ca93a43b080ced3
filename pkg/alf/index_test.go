package alf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-alfextract/internal/testutil"
)

func TestLoadIndex_Variant(t *testing.T) {
	tests := []struct {
		name    string
		magic   string
		want    Variant
		wantErr error
	}{
		{name: "平文", magic: "S5IN", want: VariantPlain},
		{name: "圧縮ベース", magic: "S5IC", want: VariantCompressedBase},
		{name: "圧縮追加", magic: "S5AC", want: VariantCompressedAppend},
		{name: "追加タグA", magic: "S5AA", want: VariantCompressedAppend},
		{name: "ベースタグA", magic: "S5IA", want: VariantCompressedBase},
		{name: "S4形式", magic: "S4IC", wantErr: ErrFormat},
		{name: "不明なタグ", magic: "S5IX", wantErr: ErrFormat},
		{name: "空のマジック", magic: "", wantErr: ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := testutil.PlainIndex(t, tt.magic, "タイトル", nil)
			idx, err := LoadIndex(raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var fe *FormatError
				assert.True(t, errors.As(err, &fe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx.Variant)
			assert.Equal(t, tt.magic, idx.Magic)
		})
	}
}

func TestLoadIndex_Title(t *testing.T) {
	raw := testutil.PlainIndex(t, "S5IN", "神採りアルケミーマイスター", nil)
	idx, err := LoadIndex(raw)
	require.NoError(t, err)
	assert.Equal(t, "神採りアルケミーマイスター", idx.Title)
}

func TestLoadIndex_ShortHeader(t *testing.T) {
	_, err := LoadIndex(make([]byte, 0x20))
	require.ErrorIs(t, err, ErrCorruptData)
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "plain", VariantPlain.String())
	assert.Equal(t, "compressed-append", VariantCompressedAppend.String())
	assert.Equal(t, "compressed-base", VariantCompressedBase.String())
	assert.Equal(t, "unknown", Variant(9).String())
	assert.False(t, VariantPlain.Compressed())
	assert.True(t, VariantCompressedBase.Compressed())
}

type fakeReader struct {
	data []byte
	err  error
}

func (r *fakeReader) ReadFile(string) ([]byte, error) {
	return r.data, r.err
}

func TestReadIndexFile(t *testing.T) {
	idx, err := ReadIndexFile(&fakeReader{data: testutil.PlainIndex(t, "S5IN", "", nil)}, "SYS5INI.BIN")
	require.NoError(t, err)
	assert.Equal(t, VariantPlain, idx.Variant)

	_, err = ReadIndexFile(&fakeReader{err: errors.New("open error")}, "SYS5INI.BIN")
	require.ErrorIs(t, err, ErrIO)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "SYS5INI.BIN", ioErr.Path)
}
