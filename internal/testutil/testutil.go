// Package testutil はテスト用のインデックスとアーカイブを生成します
package testutil

import (
	"encoding/binary"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/shiroemons/go-alfextract/pkg/lzss"
)

const (
	archiveNameSize = 0x200
	entrySize       = 0x90
	plainNameSize   = 0x88
	compNameSize    = 0x80
	plainDirOffset  = 0x220
)

// File はアーカイブに格納するテスト用ファイル
type File struct {
	Name string
	Data []byte
}

// Entry はディレクトリに書き込むエントリ
type Entry struct {
	Name    string
	Archive uint32
	Index   uint32
	Offset  uint32
	Length  uint32
}

// PlainArchive は平文ディレクトリ内の1アーカイブ分のブロック
type PlainArchive struct {
	Name    string
	Entries []Entry
}

// EncodeWide は文字列をUTF-16LEに変換します
func EncodeWide(tb testing.TB, s string) []byte {
	tb.Helper()

	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		tb.Fatalf("UTF-16への変換に失敗しました: %v", err)
	}
	return b
}

// wideField は size バイトのフィールドに名前を書き込みます。
// 名前がフィールドに収まらない場合はNUL終端なしで切り詰めます。
func wideField(tb testing.TB, s string, size int) []byte {
	tb.Helper()

	field := make([]byte, size)
	copy(field, EncodeWide(tb, s))
	return field
}

// PackArchive は files を連結したアーカイブを作成し、各ファイルのエントリを返します
func PackArchive(files []File, ordinal uint32) ([]byte, []Entry) {
	var blob []byte
	entries := make([]Entry, 0, len(files))
	for i, f := range files {
		entries = append(entries, Entry{
			Name:    f.Name,
			Archive: ordinal,
			Index:   uint32(i),
			Offset:  uint32(len(blob)),
			Length:  uint32(len(f.Data)),
		})
		blob = append(blob, f.Data...)
	}
	return blob, entries
}

// header はマジックとタイトルを書き込んだ size バイトのヘッダを作成します
func header(tb testing.TB, magic, title string, size int) []byte {
	tb.Helper()

	buf := make([]byte, size)
	m := EncodeWide(tb, magic)
	if len(m) > 8 {
		tb.Fatalf("マジックが長すぎます: %q", magic)
	}
	copy(buf, m)
	copy(buf[0x10:0x110], EncodeWide(tb, title))
	return buf
}

// PlainIndex は平文ディレクトリを持つインデックスを作成します
func PlainIndex(tb testing.TB, magic, title string, archives []PlainArchive) []byte {
	tb.Helper()

	buf := header(tb, magic, title, plainDirOffset)
	for _, arc := range archives {
		buf = append(buf, wideField(tb, arc.Name, archiveNameSize)...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(arc.Entries)))
		for _, e := range arc.Entries {
			rec := make([]byte, entrySize)
			copy(rec, wideField(tb, e.Name, plainNameSize))
			binary.LittleEndian.PutUint32(rec[0x88:], e.Offset)
			binary.LittleEndian.PutUint32(rec[0x8C:], e.Length)
			buf = append(buf, rec...)
		}
	}
	return buf
}

// CompressedDirectory は展開後のディレクトリ本体を作成します
func CompressedDirectory(tb testing.TB, archives []string, entries []Entry) []byte {
	tb.Helper()

	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(archives)))
	for _, name := range archives {
		buf = append(buf, wideField(tb, name, archiveNameSize)...)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		rec := make([]byte, entrySize)
		copy(rec, wideField(tb, e.Name, compNameSize))
		binary.LittleEndian.PutUint32(rec[0x80:], e.Archive)
		binary.LittleEndian.PutUint32(rec[0x84:], e.Index)
		binary.LittleEndian.PutUint32(rec[0x88:], e.Offset)
		binary.LittleEndian.PutUint32(rec[0x8C:], e.Length)
		buf = append(buf, rec...)
	}
	return buf
}

// CompressedIndex はディレクトリをLZSS圧縮して格納したインデックスを作成します。
// マジックの3文字目が 'A' なら追加インデックスのオフセットを使います。
func CompressedIndex(tb testing.TB, magic, title string, dir []byte) []byte {
	tb.Helper()

	comp := lzss.Compress(dir, nil)
	return RawCompressedIndex(tb, magic, title, uint32(len(dir)), uint32(len(comp)), comp)
}

// RawCompressedIndex はサイズフィールドと圧縮データをそのまま書き込んだインデックスを作成します
func RawCompressedIndex(tb testing.TB, magic, title string, size, compSize uint32, payload []byte) []byte {
	tb.Helper()

	off := 0x21C
	if r := []rune(magic); len(r) >= 3 && r[2] == 'A' {
		off = 0x214
	}

	buf := header(tb, magic, title, off)
	buf = binary.LittleEndian.AppendUint32(buf, size)
	buf = binary.LittleEndian.AppendUint32(buf, size)
	buf = binary.LittleEndian.AppendUint32(buf, compSize)
	return append(buf, payload...)
}
