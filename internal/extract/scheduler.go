// Package extract はアーカイブごとにワーカーを立ててエントリを抽出します
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/shiroemons/go-alfextract/internal/interfaces"
	"github.com/shiroemons/go-alfextract/pkg/alf"
)

// Options は抽出処理のオプション
type Options struct {
	// OutputDir は出力先の基準ディレクトリ
	OutputDir string

	// KeepGoing が true の場合、エントリ単位の失敗を記録して処理を続けます
	KeepGoing bool

	// DryRun が true の場合、アーカイブを開かずファイルも書き込みません
	DryRun bool
}

// Summary は抽出結果の集計
type Summary struct {
	Archives  int // ワーカーを起動したアーカイブ数
	Extracted int
	Bytes     int64
	Failures  []Failure

	// PerArchive はディレクトリ順の、アーカイブごとの結果
	PerArchive []ArchiveSummary
}

// ArchiveSummary はアーカイブ1つ分の抽出結果
type ArchiveSummary struct {
	Name      string
	Output    string
	Entries   int
	Extracted int
	Bytes     int64

	// Opened は抽出対象のエントリがありワーカーを起動したかどうか。
	// false のアーカイブは開かれず、存在しなくてもエラーになりません。
	Opened bool
}

// Scheduler は抽出処理を管理します
type Scheduler struct {
	fs     interfaces.FileSystem
	logger interfaces.Logger
	opts   Options
}

// NewScheduler は新しいSchedulerを作成します
func NewScheduler(fs interfaces.FileSystem, logger interfaces.Logger, opts Options) *Scheduler {
	return &Scheduler{
		fs:     fs,
		logger: logger,
		opts:   opts,
	}
}

// Run はエントリを持つアーカイブごとに1つのワーカーを起動し、全ワーカーの終了を待ちます。
//
// 既定では最初のエラーで中断し、他のワーカーも次のエントリに進む前に停止します。
// KeepGoing の場合は失敗を Summary.Failures に集め、最後に ErrEntriesFailed を返します。
func (s *Scheduler) Run(ctx context.Context, dir *alf.Directory) (*Summary, error) {
	g, gctx := errgroup.WithContext(ctx)

	// ワーカーは自分の要素だけに書き込む
	results := make([]workerResult, len(dir.Archives))
	for i, arc := range dir.Archives {
		results[i].output = OutputRoot(s.opts.OutputDir, dir.Variant, arc)
		if i >= len(dir.Queues) || len(dir.Queues[i]) == 0 {
			s.logger.Printf("%s: 抽出対象がないため開きません\n", arc.Name)
			continue
		}
		results[i].entries = len(dir.Queues[i])

		w := &worker{
			archive: arc,
			queue:   dir.Queues[i],
			fs:      s.fs,
			logger:  s.logger,
			emitter: NewEmitter(s.fs, results[i].output),
			opts:    s.opts,
			result:  &results[i],
		}
		results[i].started = true
		g.Go(func() error {
			return w.run(gctx)
		})
	}

	err := g.Wait()

	summary := &Summary{PerArchive: make([]ArchiveSummary, len(results))}
	for i, r := range results {
		summary.PerArchive[i] = ArchiveSummary{
			Name:      dir.Archives[i].Name,
			Output:    r.output,
			Entries:   r.entries,
			Extracted: r.extracted,
			Bytes:     r.bytes,
			Opened:    r.started,
		}
		if !r.started {
			continue
		}
		summary.Archives++
		summary.Extracted += r.extracted
		summary.Bytes += r.bytes
		summary.Failures = append(summary.Failures, r.failures...)
	}

	if err != nil {
		return summary, err
	}
	if len(summary.Failures) > 0 {
		errs := make([]error, len(summary.Failures))
		for i, f := range summary.Failures {
			errs[i] = f
		}
		return summary, fmt.Errorf("%w (%d 件): %w", ErrEntriesFailed, len(errs), errors.Join(errs...))
	}
	return summary, nil
}

type workerResult struct {
	output    string
	entries   int
	started   bool
	extracted int
	bytes     int64
	failures  []Failure
}

// worker は1つのアーカイブとそのキューを専有します
type worker struct {
	archive alf.Archive
	queue   alf.WorkQueue
	fs      interfaces.FileSystem
	logger  interfaces.Logger
	emitter *Emitter
	opts    Options
	result  *workerResult
}

func (w *worker) run(ctx context.Context) error {
	if w.opts.DryRun {
		for _, e := range w.queue {
			w.logger.Printf("offset 0x%08X size 0x%08X name %s\n", e.Offset, e.Length, w.emitter.Path(e.Name))
			w.result.extracted++
			w.result.bytes += int64(e.Length)
		}
		return nil
	}

	if err := w.emitter.Prepare(); err != nil {
		return w.fail("", err)
	}

	size, err := w.archiveSize()
	if err != nil {
		return w.fail("", err)
	}

	f, err := w.fs.Open(w.archive.Path)
	if err != nil {
		return w.fail("", alf.NewIOError("アーカイブのオープン", w.archive.Path, err))
	}
	defer f.Close()

	for _, e := range w.queue {
		// 他のワーカーが失敗していればここで止まる
		if err := ctx.Err(); err != nil {
			return err
		}

		// 読み込みバッファを確保する前に範囲を確認する
		if e.End() > size {
			err := fmt.Errorf("%w: %w: 0x%X+0x%X (アーカイブサイズ 0x%X)",
				alf.ErrCorruptData, ErrEntryOutOfRange, e.Offset, e.Length, size)
			if err := w.fail(e.Name, err); err != nil {
				return err
			}
			continue
		}

		path, err := w.extractEntry(f, e)
		if err != nil {
			if err := w.fail(e.Name, err); err != nil {
				return err
			}
			continue
		}

		w.result.extracted++
		w.result.bytes += int64(e.Length)
		w.logger.Printf("offset 0x%08X size 0x%08X name %s\n", e.Offset, e.Length, path)
	}
	return nil
}

// archiveSize はアーカイブのサイズを返します
func (w *worker) archiveSize() (uint64, error) {
	info, err := w.fs.Stat(w.archive.Path)
	if err != nil {
		return 0, alf.NewIOError("アーカイブの情報取得", w.archive.Path, err)
	}
	if info.IsDir() {
		return 0, alf.NewIOError("アーカイブの情報取得", w.archive.Path, ErrArchiveIsDirectory)
	}
	return uint64(info.Size()), nil
}

// extractEntry はアーカイブから1エントリ分を読み出して書き込みます
func (w *worker) extractEntry(r io.ReaderAt, e alf.Entry) (string, error) {
	buf := make([]byte, e.Length)
	section := io.NewSectionReader(r, int64(e.Offset), int64(e.Length))
	if _, err := io.ReadFull(section, buf); err != nil {
		return "", alf.NewIOError(
			fmt.Sprintf("エントリの読み込み (0x%X+0x%X)", e.Offset, e.Length),
			w.archive.Path,
			err,
		)
	}
	return w.emitter.Emit(e.Name, buf)
}

// fail は継続モードなら失敗を記録して nil を、そうでなければエラーを返します
func (w *worker) fail(entry string, err error) error {
	f := Failure{Archive: w.archive.Name, Entry: entry, Err: err}
	if !w.opts.KeepGoing {
		return f
	}
	w.result.failures = append(w.result.failures, f)
	return nil
}
