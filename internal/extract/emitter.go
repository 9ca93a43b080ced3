package extract

import (
	"path/filepath"

	"github.com/shiroemons/go-alfextract/internal/interfaces"
	"github.com/shiroemons/go-alfextract/pkg/alf"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	// compressedRoot は圧縮形式のインデックスから展開する際の出力ルート
	compressedRoot = "data"
)

// OutputRoot はアーカイブの出力先ディレクトリを返します。
// 平文形式は <base>/<stem>、圧縮形式は <base>/data/<stem> になります。
// 同じ stem を持つアーカイブは同じディレクトリに書き込まれ、後から書いた方が残ります。
func OutputRoot(base string, variant alf.Variant, arc alf.Archive) string {
	if variant.Compressed() {
		return filepath.Join(base, compressedRoot, arc.Stem())
	}
	return filepath.Join(base, arc.Stem())
}

// Emitter は1つのアーカイブのエントリをファイルとして書き出します。
// ワーカーごとに作成し、共有はしません。
type Emitter struct {
	fs   interfaces.FileSystem
	root string
	dirs map[string]struct{}
}

// NewEmitter は新しいEmitterを作成します
func NewEmitter(fs interfaces.FileSystem, root string) *Emitter {
	return &Emitter{
		fs:   fs,
		root: root,
		dirs: make(map[string]struct{}),
	}
}

// Path はエントリ名から出力パスを作ります。名前中の '\' と '/' はディレクトリ区切りとして扱います。
func (e *Emitter) Path(name string) string {
	return filepath.Join(e.root, alf.LocalPath(name))
}

// Prepare は出力先ディレクトリを作成します。既に存在していても問題ありません。
func (e *Emitter) Prepare() error {
	return e.ensureDir(e.root)
}

// Emit はエントリのデータを書き出し、書き込んだパスを返します。既存のファイルは上書きします。
func (e *Emitter) Emit(name string, data []byte) (string, error) {
	if err := alf.CheckName(name); err != nil {
		return "", err
	}
	path := e.Path(name)
	if err := e.ensureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := e.fs.WriteFile(path, data, filePerm); err != nil {
		return "", alf.NewIOError("ファイルの書き込み", path, err)
	}
	return path, nil
}

// ensureDir は作成済みのディレクトリを記録し、同じディレクトリを二度作りません
func (e *Emitter) ensureDir(dir string) error {
	if _, ok := e.dirs[dir]; ok {
		return nil
	}
	if err := e.fs.MkdirAll(dir, dirPerm); err != nil {
		return alf.NewIOError("ディレクトリの作成", dir, err)
	}
	e.dirs[dir] = struct{}{}
	return nil
}
