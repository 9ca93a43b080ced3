package fileutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-alfextract/internal/mocks"
)

func TestIndexFileFinder_Find(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockFileSystem)
		wantFile  string
		wantErr   error
	}{
		{
			name: "カレントディレクトリにベースインデックス",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Files["/current/SYS5INI.BIN"] = []byte("test")
				fs.Files["/current/DATA1.ALF"] = []byte("test")
			},
			wantFile: "/current/SYS5INI.BIN",
		},
		{
			name: "小文字のファイル名",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Files["/current/append01.aai"] = []byte("test")
			},
			wantFile: "/current/append01.aai",
		},
		{
			name: "ベースと追加インデックスが両方ある場合はベースを優先",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Files["/current/APPEND01.AAI"] = []byte("test")
				fs.Files["/current/SYS5INI.BIN"] = []byte("test")
			},
			wantFile: "/current/SYS5INI.BIN",
		},
		{
			name: "追加インデックスが複数",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Files["/current/APPEND01.AAI"] = []byte("test")
				fs.Files["/current/APPEND02.AAI"] = []byte("test")
			},
			wantErr: ErrMultipleIndexFiles,
		},
		{
			name: "実行ファイルディレクトリにインデックス",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/exec/program"
				fs.Dirs["/current"] = true
				fs.Files["/exec/SYS5INI.BIN"] = []byte("test")
			},
			wantFile: "/exec/SYS5INI.BIN",
		},
		{
			name: "ディレクトリは対象外",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/exec/program"
				fs.Dirs["/current"] = true
				fs.Dirs["/current/SYS5INI.BIN"] = true
				fs.Dirs["/exec"] = true
			},
			wantFile: "",
		},
		{
			name: "インデックスが見つからない",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/exec/program"
				fs.Dirs["/current"] = true
				fs.Dirs["/exec"] = true
			},
			wantFile: "",
		},
		{
			name: "ディレクトリが読めない",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/missing"
			},
			wantErr: ErrReadDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			tt.setupMock(fs)

			got, err := NewIndexFileFinder(fs).Find()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, got)
		})
	}
}

func TestIndexFileFinder_FindGetwdError(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Error = errors.New("boom")

	_, err := NewIndexFileFinder(fs).Find()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGetCurrentDirectory)
}

func TestIndexFilePattern(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"SYS5INI.BIN", true},
		{"sys5ini.bin", true},
		{"APPEND01.AAI", true},
		{"Append123.aai", true},
		{"APPEND.AAI", false},
		{"DATA1.ALF", false},
		{"SYS5INI.BIN.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexFilePattern.MatchString(tt.name))
		})
	}
}
