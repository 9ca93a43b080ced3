package alf

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat はマジックや形式タグが認識できない場合のエラー
	ErrFormat = errors.New("未対応のインデックス形式です")

	// ErrCorruptData はインデックスの構造が壊れている場合のエラー
	ErrCorruptData = errors.New("インデックスのデータが壊れています")

	// ErrIO はインデックスやアーカイブの読み書きに失敗した場合のエラー
	ErrIO = errors.New("ファイルの入出力に失敗しました")

	// ErrUnsafeName はエントリ名が出力先ディレクトリの外を指している場合のエラー
	ErrUnsafeName = errors.New("エントリ名が出力先の外を指しています")

	errUnterminatedName = errors.New("名前がフィールド内で終端していません")
)

// FormatError はインデックス形式の判定に失敗したことを表します
type FormatError struct {
	Magic  string // 読み取ったマジック
	Reason string // 判定に失敗した理由
}

// Error はエラーメッセージを返します
func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: マジック %q: %s", ErrFormat, e.Magic, e.Reason)
}

// Is は ErrFormat と一致します
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// CorruptDataError はインデックスの解析中に不正なデータを検出したことを表します
type CorruptDataError struct {
	Op     string // 実行していた操作
	Offset int    // 問題を検出したオフセット
	Err    error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("%v: %s (オフセット 0x%X): %v", ErrCorruptData, e.Op, e.Offset, e.Err)
}

// Unwrap は元のエラーを返します
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// Is は ErrCorruptData と一致します
func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}

// IOError はファイル操作の失敗を表します
type IOError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %s %s: %v", ErrIO, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrIO, e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is は ErrIO と一致します
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError は新しいIOErrorを作成します
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
