package alf

import (
	"fmt"
)

// FileReader はインデックスファイルを読み込むためのインターフェース
type FileReader interface {
	ReadFile(filename string) ([]byte, error)
}

// ReadIndexFile はインデックスファイルを読み込んで解析します
func ReadIndexFile(r FileReader, filename string) (*Index, error) {
	raw, err := r.ReadFile(filename)
	if err != nil {
		return nil, NewIOError("インデックスの読み込み", filename, err)
	}
	return LoadIndex(raw)
}

// LoadIndex はインデックスファイルの内容からマジックとタイトルを読み取り、形式を判定します
func LoadIndex(raw []byte) (*Index, error) {
	if len(raw) < headerSize {
		return nil, &CorruptDataError{
			Op:     "ヘッダの読み込み",
			Offset: len(raw),
			Err:    fmt.Errorf("インデックスが短すぎます (%d バイト)", len(raw)),
		}
	}

	magic, err := decodeWide(raw[:magicSize])
	if err != nil {
		return nil, &FormatError{Magic: fmt.Sprintf("% x", raw[:magicSize]), Reason: "UTF-16として読めません"}
	}

	variant, err := classify(magic)
	if err != nil {
		return nil, err
	}

	return &Index{
		Magic:   magic,
		Title:   wideString(raw[titleOffset:headerSize]),
		Variant: variant,
		Raw:     raw,
	}, nil
}

// classify はマジックから形式を判定します
func classify(magic string) (Variant, error) {
	r := []rune(magic)
	if len(r) != 4 {
		return 0, &FormatError{Magic: magic, Reason: "4文字ではありません"}
	}

	switch string(r[:3]) {
	case "S5I", "S5A":
	default:
		return 0, &FormatError{Magic: magic, Reason: "S5I または S5A で始まっていません"}
	}

	switch r[3] {
	case 'N':
		return VariantPlain, nil
	case 'C', 'A':
		if r[2] == 'A' {
			return VariantCompressedAppend, nil
		}
		return VariantCompressedBase, nil
	default:
		return 0, &FormatError{Magic: magic, Reason: fmt.Sprintf("不明な形式タグ %q", r[3])}
	}
}
