package alf

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/shiroemons/go-alfextract/pkg/lzss"
)

// ParseOptions はディレクトリ解析のオプション
type ParseOptions struct {
	// Filter は大文字小文字を区別しない部分一致フィルタ（空なら全件）
	Filter string

	// ArchiveDir はアーカイブ名を解決する基準ディレクトリ（空ならカレントディレクトリ）
	ArchiveDir string

	// PlainArchives は平文形式で読み取るアーカイブ数。0以下なら1。
	// 2以上は連続するアーカイブブロックを仮定しており、実データでは未検証。
	PlainArchives int
}

// ParseDirectory はインデックスのディレクトリを解析し、アーカイブと抽出キューを返します
func ParseDirectory(idx *Index, opts ParseOptions) (*Directory, error) {
	p := &parser{
		filter:     newNameFilter(opts.Filter),
		archiveDir: opts.ArchiveDir,
		dir:        &Directory{Variant: idx.Variant},
	}

	if !idx.Variant.Compressed() {
		n := opts.PlainArchives
		if n <= 0 {
			n = 1
		}
		if err := p.parsePlain(idx.Raw, n); err != nil {
			return nil, err
		}
		return p.dir, nil
	}

	data, err := DirectoryBytes(idx)
	if err != nil {
		return nil, err
	}
	if err := p.parseCompressed(data); err != nil {
		return nil, err
	}
	return p.dir, nil
}

// DirectoryBytes は圧縮形式のインデックスからディレクトリを展開して返します。
// 圧縮サイズが0の場合は空のディレクトリとして nil を返します。
func DirectoryBytes(idx *Index) ([]byte, error) {
	var off int
	switch idx.Variant {
	case VariantCompressedAppend:
		off = appendHeaderOffset
	case VariantCompressedBase:
		off = baseHeaderOffset
	default:
		return nil, &FormatError{Magic: idx.Magic, Reason: "圧縮ディレクトリを持たない形式です"}
	}

	c := &cursor{buf: idx.Raw, pos: off, op: "圧縮ヘッダの読み込み"}
	size, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.u32(); err != nil { // 展開サイズがもう一度格納されている
		return nil, err
	}
	compSize, err := c.u32()
	if err != nil {
		return nil, err
	}
	if compSize == 0 {
		return nil, nil
	}

	c.op = "圧縮ディレクトリの読み込み"
	comp, err := c.next(int(compSize))
	if err != nil {
		return nil, err
	}

	data, err := lzss.Decompress(comp, int(size), nil)
	if err != nil {
		return nil, &CorruptDataError{Op: "ディレクトリの展開", Offset: off + 12, Err: err}
	}
	return data, nil
}

type parser struct {
	filter     *nameFilter
	archiveDir string
	dir        *Directory
}

// addArchive はアーカイブを登録し、対応するキューを作成します
func (p *parser) addArchive(name string) {
	p.dir.Archives = append(p.dir.Archives, Archive{
		Name:    name,
		Path:    filepath.Join(p.archiveDir, LocalPath(name)),
		Ordinal: len(p.dir.Archives),
	})
	p.dir.Queues = append(p.dir.Queues, nil)
}

// readArchiveName はアーカイブ名フィールドを読み込みます
func (p *parser) readArchiveName(c *cursor) (string, error) {
	off := c.pos
	field, err := c.next(ArchiveNameSize)
	if err != nil {
		return "", err
	}
	return nameField(field, off)
}

// parsePlain は平文形式のディレクトリを解析します
func (p *parser) parsePlain(buf []byte, archives int) error {
	c := &cursor{buf: buf, pos: plainDirOffset, op: "ディレクトリの解析"}

	for i := 0; i < archives; i++ {
		name, err := p.readArchiveName(c)
		if err != nil {
			return err
		}
		count, err := c.u32()
		if err != nil {
			return err
		}
		p.addArchive(name)

		queue := make(WorkQueue, 0, c.capacity(count, EntrySize))
		for j := uint32(0); j < count; j++ {
			off := c.pos
			rec, err := c.next(EntrySize)
			if err != nil {
				return err
			}
			p.dir.Records++

			entryName, err := readEntryName(rec[:plainNameSize], off)
			if err != nil {
				return err
			}
			// 一致しなくてもレコード分は読み進めている
			if !p.filter.Match(entryName) {
				p.dir.Skipped++
				continue
			}

			queue = append(queue, Entry{
				Name:    entryName,
				Archive: i,
				Index:   j,
				Offset:  binary.LittleEndian.Uint32(rec[0x88:]),
				Length:  binary.LittleEndian.Uint32(rec[0x8C:]),
			})
		}
		p.dir.Queues[i] = queue
	}
	return nil
}

// parseCompressed は展開済みのディレクトリを解析します
func (p *parser) parseCompressed(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	c := &cursor{buf: buf, op: "ディレクトリの解析"}

	archives, err := c.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < archives; i++ {
		name, err := p.readArchiveName(c)
		if err != nil {
			return err
		}
		p.addArchive(name)
	}

	count, err := c.u32()
	if err != nil {
		return err
	}
	for j := uint32(0); j < count; j++ {
		off := c.pos
		rec, err := c.next(EntrySize)
		if err != nil {
			return err
		}
		p.dir.Records++

		entryName, err := readEntryName(rec[:compressedNameSize], off)
		if err != nil {
			return err
		}

		ordinal := binary.LittleEndian.Uint32(rec[0x80:])
		if ordinal >= archives {
			return &CorruptDataError{
				Op:     "エントリの解析",
				Offset: off + 0x80,
				Err:    fmt.Errorf("%s: アーカイブ番号 %d が範囲外です (アーカイブ数 %d)", entryName, ordinal, archives),
			}
		}

		if !p.filter.Match(entryName) {
			p.dir.Skipped++
			continue
		}

		p.dir.Queues[ordinal] = append(p.dir.Queues[ordinal], Entry{
			Name:    entryName,
			Archive: int(ordinal),
			Index:   binary.LittleEndian.Uint32(rec[0x84:]),
			Offset:  binary.LittleEndian.Uint32(rec[0x88:]),
			Length:  binary.LittleEndian.Uint32(rec[0x8C:]),
		})
	}
	return nil
}

// readEntryName はエントリ名を読み込み、出力先の外を指す名前を拒否します
func readEntryName(field []byte, off int) (string, error) {
	name, err := nameField(field, off)
	if err != nil {
		return "", err
	}
	if err := CheckName(name); err != nil {
		return "", &CorruptDataError{Op: "名前の読み込み", Offset: off, Err: err}
	}
	return name, nil
}

// cursor は境界チェック付きでバッファを読み進めます
type cursor struct {
	buf []byte
	pos int
	op  string
}

func (c *cursor) next(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, &CorruptDataError{
			Op:     c.op,
			Offset: c.pos,
			Err:    fmt.Errorf("%d バイト必要ですが残りは %d バイトです", n, max(len(c.buf)-c.pos, 0)),
		}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// capacity は残りバイト数で収まる範囲に件数を制限します
func (c *cursor) capacity(count uint32, size int) int {
	limit := (len(c.buf) - c.pos) / size
	if int64(count) < int64(limit) {
		return int(count)
	}
	return limit
}
