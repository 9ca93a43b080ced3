// Package interfaces はalfextractコマンドで使用するインターフェースを定義します
package interfaces

import (
	"io"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Open(name string) (ReadAtCloser, error)
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
	Executable() (string, error)
}

// ReadAtCloser は位置指定読み込みができるファイルハンドル
type ReadAtCloser interface {
	io.ReaderAt
	io.Closer
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	IsDir() bool
	Size() int64
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// IndexFinder はインデックスファイルを検索するインターフェースです
type IndexFinder interface {
	Find() (string, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
