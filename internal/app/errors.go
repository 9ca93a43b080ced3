package app

import "errors"

var (
	// ErrIndexNotFound はインデックスファイルが見つからない場合のエラー
	ErrIndexNotFound = errors.New("インデックスファイルが見つかりませんでした。-i フラグで指定してください")

	// ErrLoadIndex はインデックスの読み込みに失敗した場合のエラー
	ErrLoadIndex = errors.New("インデックスの読み込みに失敗しました")

	// ErrParseDirectory はディレクトリの解析に失敗した場合のエラー
	ErrParseDirectory = errors.New("ディレクトリの解析に失敗しました")

	// ErrExtract は抽出に失敗した場合のエラー
	ErrExtract = errors.New("抽出に失敗しました")
)
