package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrEntriesFailed は継続モードで一部のエントリの抽出に失敗した場合のエラー
	ErrEntriesFailed = errors.New("一部のエントリの抽出に失敗しました")

	// ErrEntryOutOfRange はエントリがアーカイブの終端を越えている場合のエラー
	ErrEntryOutOfRange = errors.New("エントリがアーカイブの範囲外です")

	// ErrArchiveIsDirectory はアーカイブのパスがディレクトリだった場合のエラー
	ErrArchiveIsDirectory = errors.New("アーカイブのパスがディレクトリです")
)

// Failure は継続モードで記録した抽出失敗
type Failure struct {
	Archive string // アーカイブ名
	Entry   string // エントリ名（アーカイブ自体の失敗なら空）
	Err     error  // 元のエラー
}

// Error はエラーメッセージを返します
func (f Failure) Error() string {
	if f.Entry != "" {
		return fmt.Sprintf("%s: %s: %v", f.Archive, f.Entry, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Archive, f.Err)
}

// Unwrap は元のエラーを返します
func (f Failure) Unwrap() error {
	return f.Err
}
