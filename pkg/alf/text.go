package alf

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeWide はUTF-16LEのバイト列をUTF-8文字列に変換します
func decodeWide(b []byte) (string, error) {
	ret, _, err := transform.Bytes(utf16le.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// wideLen はNUL文字までのバイト数を返します。見つからなければ -1 を返します。
func wideLen(field []byte) int {
	for i := 0; i+1 < len(field); i += 2 {
		if binary.LittleEndian.Uint16(field[i:]) == 0 {
			return i
		}
	}
	return -1
}

// wideString は固定長フィールドの文字列を取り出します。NUL文字がなければフィールド全体を使います。
func wideString(field []byte) string {
	if n := wideLen(field); n >= 0 {
		field = field[:n]
	}
	s, err := decodeWide(field)
	if err != nil {
		return ""
	}
	return s
}

// nameField はNUL終端が必須の名前フィールドを読み込みます
func nameField(field []byte, offset int) (string, error) {
	n := wideLen(field)
	if n < 0 {
		return "", &CorruptDataError{Op: "名前の読み込み", Offset: offset, Err: errUnterminatedName}
	}
	s, err := decodeWide(field[:n])
	if err != nil {
		return "", &CorruptDataError{Op: "名前の読み込み", Offset: offset, Err: err}
	}
	return s, nil
}

// nameFilter は大文字小文字を区別しない部分一致フィルタです
type nameFilter struct {
	caser  cases.Caser
	needle string
}

func newNameFilter(s string) *nameFilter {
	if s == "" {
		return nil
	}
	c := cases.Fold()
	return &nameFilter{caser: c, needle: c.String(s)}
}

// Match はフィルタが nil の場合は常に true を返します
func (f *nameFilter) Match(name string) bool {
	if f == nil {
		return true
	}
	return strings.Contains(f.caser.String(name), f.needle)
}
