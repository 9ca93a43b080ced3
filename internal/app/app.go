// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shiroemons/go-alfextract/internal/config"
	"github.com/shiroemons/go-alfextract/internal/extract"
	"github.com/shiroemons/go-alfextract/internal/fileutil"
	"github.com/shiroemons/go-alfextract/internal/interfaces"
	"github.com/shiroemons/go-alfextract/internal/listing"
	"github.com/shiroemons/go-alfextract/pkg/alf"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config      *config.Config
	logger      *config.DebugLogger
	indexFinder interfaces.IndexFinder
	fs          interfaces.FileSystem
	stdout      io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem  interfaces.FileSystem
	IndexFinder interfaces.IndexFinder
	Stdout      io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのIndexFinderを設定
	var indexFinder interfaces.IndexFinder
	if opts.IndexFinder != nil {
		indexFinder = opts.IndexFinder
	} else {
		indexFinder = fileutil.NewIndexFileFinder(fs)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &App{
		config:      cfg,
		logger:      config.NewDebugLogger(cfg.DebugMode),
		indexFinder: indexFinder,
		fs:          fs,
		stdout:      stdout,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	indexPath, err := a.resolveIndex()
	if err != nil {
		return err
	}

	a.logger.Printf("インデックスファイル %s を読み込みます...\n", indexPath)
	idx, err := alf.ReadIndexFile(a.fs, indexPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadIndex, err)
	}
	if !a.config.ListOnly {
		fmt.Fprintf(a.stdout, "%s [%s]\n", idx.Title, idx.Magic)
	}

	archiveDir := a.config.ArchiveDir
	if archiveDir == "" {
		archiveDir = filepath.Dir(indexPath)
	}

	dir, err := alf.ParseDirectory(idx, alf.ParseOptions{
		Filter:        a.config.Filter,
		ArchiveDir:    archiveDir,
		PlainArchives: a.config.PlainArchives,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseDirectory, err)
	}

	a.logger.Printf("形式: %s, アーカイブ数: %d, レコード数: %d, 除外: %d\n",
		dir.Variant, len(dir.Archives), dir.Records, dir.Skipped)
	a.logger.Dump(dir.Archives)

	outputRoot := func(arc alf.Archive) string {
		return extract.OutputRoot(a.config.OutputDir, dir.Variant, arc)
	}

	if a.config.ListOnly {
		return listing.Write(a.stdout, listing.NewDocument(indexPath, idx, dir, outputRoot))
	}

	return a.extract(ctx, dir)
}

// resolveIndex は指定されたインデックスか、自動検出したインデックスのパスを返します
func (a *App) resolveIndex() (string, error) {
	if a.config.IndexPath != "" {
		return a.config.IndexPath, nil
	}

	path, err := a.indexFinder.Find()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", ErrIndexNotFound
	}
	a.logger.Printf("自動検出したインデックスファイル %s を使用します\n", filepath.Base(path))
	return path, nil
}

// extract はディレクトリのエントリをすべて抽出し、結果を表示します
func (a *App) extract(ctx context.Context, dir *alf.Directory) error {
	if a.config.DryRun {
		fmt.Fprintln(a.stdout, "ドライランモード: ファイルは書き込まれません")
	}

	scheduler := extract.NewScheduler(a.fs, a.logger, extract.Options{
		OutputDir: a.config.OutputDir,
		KeepGoing: a.config.KeepGoing,
		DryRun:    a.config.DryRun,
	})
	summary, err := scheduler.Run(ctx, dir)

	if summary != nil {
		for _, arc := range summary.PerArchive {
			if !arc.Opened {
				fmt.Fprintf(a.stdout, "%s: 抽出対象なし (開いていません)\n", arc.Name)
				continue
			}
			fmt.Fprintf(a.stdout, "%s: %d/%d 個 -> %s\n", arc.Name, arc.Extracted, arc.Entries, arc.Output)
		}
		fmt.Fprintf(a.stdout, "%d 個のアーカイブから %d 個のファイルを抽出しました (%d バイト)\n",
			summary.Archives, summary.Extracted, summary.Bytes)
		for _, f := range summary.Failures {
			fmt.Fprintf(a.stdout, "  失敗: %v\n", f)
		}
	}

	if err != nil {
		if errors.Is(err, extract.ErrEntriesFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	return nil
}
