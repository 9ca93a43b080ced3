package fileutil

import "errors"

var (
	// ErrGetCurrentDirectory はカレントディレクトリを取得できない場合のエラー
	ErrGetCurrentDirectory = errors.New("カレントディレクトリを取得できませんでした")

	// ErrGetExecutablePath は実行ファイルのパスを取得できない場合のエラー
	ErrGetExecutablePath = errors.New("実行ファイルのパスを取得できませんでした")

	// ErrReadDirectory はディレクトリ内のファイル一覧を取得できない場合のエラー
	ErrReadDirectory = errors.New("ディレクトリ内のファイル一覧を取得できませんでした")

	// ErrMultipleIndexFiles は候補となるインデックスファイルが複数見つかった場合のエラー
	ErrMultipleIndexFiles = errors.New("複数のインデックスファイルが見つかりました。-i フラグで使用するファイルを指定してください")
)
