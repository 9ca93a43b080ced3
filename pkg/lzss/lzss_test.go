package lzss

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompress_SingleLiteral(t *testing.T) {
	// flags=0x01 (リテラル) + 'A'
	out, err := Decompress([]byte{0x01, 0x41}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, out)
}

func TestDecompress_ZeroSize(t *testing.T) {
	out, err := Decompress(nil, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecompress_SeededWindow(t *testing.T) {
	// flags=0x00 (後方参照) + リング位置0, 長さ18
	// 書き込み開始位置は0xFEEなので、位置0はまだ書かれていない初期化領域
	src := []byte{0x00, 0x00, 0x0F}

	out, err := Decompress(src, 18, nil)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 18), out)

	out, err = Decompress(src, 18, &Options{Fill: 0xAA})
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 18), out)
}

func TestDecompress_UnseededReferenceBeforeStart(t *testing.T) {
	src := []byte{0x00, 0x00, 0x0F}

	_, err := Decompress(src, 18, &Options{Unseeded: true})
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestDecompress_OverlappingReference(t *testing.T) {
	// 'A' のあと直前の1バイトを参照して長さ5でコピーする
	// リング位置 0xFEE は 'A' を書いた位置
	src := []byte{0x01, 'A', 0xEE, 0xF2}

	out, err := Decompress(src, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("AAAAAA"), out)
}

func TestDecompress_StopsAtSize(t *testing.T) {
	// 長さ18の参照でも要求サイズで打ち切る
	out, err := Decompress([]byte{0x00, 0x00, 0x0F}, 5, nil)
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestDecompress_Truncated(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int
	}{
		{name: "空の入力", src: nil, size: 1},
		{name: "フラグのみ", src: []byte{0x01}, size: 1},
		{name: "リテラル後に尽きる", src: []byte{0x01, 0x41}, size: 2},
		{name: "参照の途中で尽きる", src: []byte{0x00, 0x00}, size: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.src, tt.size, nil)
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestDecompress_NegativeSize(t *testing.T) {
	_, err := Decompress(nil, -1, nil)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestCompress_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 3000)
	rng.Read(random)

	longText := bytes.Repeat([]byte("SYS5INI.BIN data\\script\\0001.bin "), 300)

	tests := []struct {
		name string
		data []byte
		opts *Options
	}{
		{name: "空", data: []byte{}},
		{name: "短いリテラル", data: []byte("ab")},
		{name: "ゼロ埋め", data: make([]byte, 1000)},
		{name: "繰り返し", data: bytes.Repeat([]byte("abc"), 100)},
		{name: "ランダム", data: random},
		{name: "窓より長いテキスト", data: longText},
		{name: "埋め値0x20", data: bytes.Repeat([]byte{0x20}, 50), opts: &Options{Fill: 0x20}},
		{name: "窓初期化なし", data: bytes.Repeat([]byte("xyz"), 40), opts: &Options{Unseeded: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := Compress(tt.data, tt.opts)
			out, err := Decompress(comp, len(tt.data), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.data, out)
		})
	}
}

func TestCompress_UsesBackReferences(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 64)
	comp := Compress(data, nil)
	assert.Less(t, len(comp), len(data)/4)
}
