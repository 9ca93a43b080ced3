// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shiroemons/go-alfextract/internal/interfaces"
)

var (
	// IndexFilePattern は SYS5INI.BIN や APPEND01.AAI のようなインデックスファイル名のパターン
	IndexFilePattern = regexp.MustCompile(`(?i)^(?:sys5ini\.bin|append\d+\.aai)$`)
)

// baseIndexName はベースインデックスのファイル名
const baseIndexName = "SYS5INI.BIN"

// IndexFileFinder はインデックスファイルの検索を行います
type IndexFileFinder struct {
	fs interfaces.FileSystem
}

// NewIndexFileFinder は新しいIndexFileFinderを作成します
func NewIndexFileFinder(fs interfaces.FileSystem) *IndexFileFinder {
	return &IndexFileFinder{fs: fs}
}

// Find はカレントディレクトリおよび実行ファイルと同じディレクトリからインデックスファイルを検索します。
// 見つからない場合は空文字列を返します。
func (f *IndexFileFinder) Find() (string, error) {
	// カレントディレクトリを取得
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	// まずカレントディレクトリを検索
	found, err := f.findInDir(currentDir)
	if err != nil {
		return "", err
	}
	if len(found) > 0 {
		return f.choose(found)
	}

	// 実行ファイルのディレクトリを検索
	execPath, err := f.fs.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
	}
	found, err = f.findInDir(filepath.Dir(execPath))
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", nil
	}
	return f.choose(found)
}

// findInDir は指定されたディレクトリ内のインデックスファイルを検索します
func (f *IndexFileFinder) findInDir(dir string) ([]string, error) {
	var found []string

	files, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if IndexFilePattern.MatchString(file.Name()) {
			found = append(found, filepath.Join(dir, file.Name()))
		}
	}

	return found, nil
}

// choose は候補が1つならそれを、複数ならベースインデックスを選びます
func (f *IndexFileFinder) choose(found []string) (string, error) {
	if len(found) == 1 {
		return found[0], nil
	}
	for _, path := range found {
		if strings.EqualFold(filepath.Base(path), baseIndexName) {
			return path, nil
		}
	}

	names := make([]string, len(found))
	for i, path := range found {
		names[i] = filepath.Base(path)
	}
	return "", fmt.Errorf("%w: %s", ErrMultipleIndexFiles, strings.Join(names, ", "))
}
