// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"bytes"
	"errors"
	"path/filepath"
	"sync"

	"github.com/shiroemons/go-alfextract/internal/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック。
// 抽出ワーカーから並行して呼ばれるため、操作はミューテックスで保護します。
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	WorkingDir string
	ExecPath   string
	Error      error

	// WriteErrors はパスごとに WriteFile が返すエラー
	WriteErrors map[string]error

	// OpenCount と CloseCount は Open と Close の呼び出し回数
	OpenCount  int
	CloseCount int

	mu sync.Mutex
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		Dirs:        make(map[string]bool),
		WriteErrors: make(map[string]error),
		WorkingDir:  "/test/dir",
		ExecPath:    "/test/exec/program",
	}
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return fs.Error
	}
	if err := fs.WriteErrors[filename]; err != nil {
		return err
	}
	fs.Files[filename] = append([]byte(nil), data...)
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return fs.Error
	}
	for p := path; p != "." && p != string(filepath.Separator) && p != ""; p = filepath.Dir(p) {
		fs.Dirs[p] = true
	}
	return nil
}

// Open はファイルを位置指定読み込み用に開きます
func (fs *MockFileSystem) Open(name string) (interfaces.ReadAtCloser, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[name]
	if !exists {
		return nil, errors.New("file not found")
	}
	fs.OpenCount++
	return &mockFile{Reader: bytes.NewReader(data), fs: fs}, nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return nil, fs.Error
	}
	if data, exists := fs.Files[name]; exists {
		return &MockFileInfo{size: int64(len(data))}, nil
	}
	if _, exists := fs.Dirs[name]; exists {
		return &MockFileInfo{isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Error != nil {
		return nil, fs.Error
	}

	// ディレクトリが明示的に設定されていない場合でも、
	// ファイルが存在する場合は空のエントリリストを返す
	if !fs.Dirs[dirname] {
		hasFiles := false
		for path := range fs.Files {
			if filepath.Dir(path) == dirname {
				hasFiles = true
				break
			}
		}
		if !hasFiles {
			return nil, errors.New("directory not found")
		}
	}

	var entries []interfaces.DirEntry
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}

	return entries, nil
}

// Getwd は現在の作業ディレクトリを返します
func (fs *MockFileSystem) Getwd() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.WorkingDir, nil
}

// Executable は実行ファイルのパスを返します
func (fs *MockFileSystem) Executable() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.ExecPath, nil
}

// OpenHandles はまだ閉じられていないハンドル数を返します
func (fs *MockFileSystem) OpenHandles() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.OpenCount - fs.CloseCount
}

// mockFile はメモリ上のデータを読むファイルハンドル
type mockFile struct {
	*bytes.Reader
	fs *MockFileSystem
}

// Close は CloseCount を加算します
func (f *mockFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	f.fs.CloseCount++
	return nil
}

// MockFileInfo はテスト用のFileInfo実装
type MockFileInfo struct {
	isDir bool
	size  int64
}

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool {
	return fi.isDir
}

// Size はファイルサイズを返します
func (fi *MockFileInfo) Size() int64 {
	return fi.size
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool {
	return de.isDir
}
