// Package alf はAGEエンジン（S5形式）のインデックスファイルを読み込むためのパッケージです。
//
// サポートするインデックス形式:
//   - S5IN: ディレクトリが平文で格納されたインデックス (SYS5INI.BIN)
//   - S5IC: ディレクトリがLZSS圧縮されたベースインデックス (SYS5INI.BIN)
//   - S5AC: ディレクトリがLZSS圧縮された追加インデックス (APPENDxx.AAI)
//
// 基本的な使い方:
//
//	idx, err := alf.LoadIndex(raw)
//	if err != nil {
//	    return err
//	}
//	dir, err := alf.ParseDirectory(idx, alf.ParseOptions{Filter: ".png"})
//	if err != nil {
//	    return err
//	}
//	for i, arc := range dir.Archives {
//	    for _, e := range dir.Queues[i] {
//	        // arc.Path の e.Offset から e.Length バイトを読む
//	    }
//	}
package alf

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// インデックスのレイアウト定数
const (
	magicSize   = 0x08
	titleOffset = 0x10
	titleSize   = 0x100
	headerSize  = titleOffset + titleSize

	plainDirOffset     = 0x220
	appendHeaderOffset = 0x214
	baseHeaderOffset   = 0x21C

	// ArchiveNameSize はアーカイブ名フィールドのバイト数
	ArchiveNameSize = 0x200

	// EntrySize はエントリレコード1件のバイト数（名前の長さに関係なく固定）
	EntrySize = 0x90

	plainNameSize      = 0x88
	compressedNameSize = 0x80
)

// Variant はインデックスの形式を表します
type Variant int

const (
	// VariantPlain はディレクトリが平文の形式
	VariantPlain Variant = iota
	// VariantCompressedAppend は圧縮ディレクトリを持つ追加インデックス
	VariantCompressedAppend
	// VariantCompressedBase は圧縮ディレクトリを持つベースインデックス
	VariantCompressedBase
)

// String は形式名を返します
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantCompressedAppend:
		return "compressed-append"
	case VariantCompressedBase:
		return "compressed-base"
	default:
		return "unknown"
	}
}

// Compressed はディレクトリが圧縮されている形式かどうかを返します
func (v Variant) Compressed() bool {
	return v == VariantCompressedAppend || v == VariantCompressedBase
}

// Index は読み込んだインデックスファイルを表します
type Index struct {
	Magic   string
	Title   string
	Variant Variant
	Raw     []byte
}

// Archive はインデックスが参照するアーカイブファイルを表します
type Archive struct {
	Name    string
	Path    string
	Ordinal int
}

// Stem はアーカイブ名から最初の '.' 以降を除いた名前を返します
func (a Archive) Stem() string {
	base := path.Base(slashName(a.Name))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// Entry はアーカイブ内の1ファイルを表します
type Entry struct {
	Name    string
	Archive int
	Index   uint32
	Offset  uint32
	Length  uint32
}

// End はエントリの終端位置を返します
func (e Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// WorkQueue は1つのアーカイブに属する抽出対象エントリの集合です
type WorkQueue []Entry

// Directory は解析済みのディレクトリを表します。
// Queues[i] は Archives[i] に属するエントリです。
type Directory struct {
	Variant  Variant
	Archives []Archive
	Queues   []WorkQueue
	Records  int // 走査したレコード数
	Skipped  int // フィルタで除外したレコード数
}

// EntryCount は抽出対象のエントリ総数を返します
func (d *Directory) EntryCount() int {
	n := 0
	for _, q := range d.Queues {
		n += len(q)
	}
	return n
}

// slashName はエンジンの '\' 区切りを '/' 区切りに変換します
func slashName(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

// LocalPath はエンジン内のパス名をOSのパス表現に変換します
func LocalPath(name string) string {
	return filepath.FromSlash(slashName(name))
}

// CheckName はエントリ名が相対パスで、".." などで上位ディレクトリに出ないことを確認します
func CheckName(name string) error {
	if !filepath.IsLocal(LocalPath(name)) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}
