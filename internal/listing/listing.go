// Package listing は解析済みディレクトリをYAMLとして出力します
package listing

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-alfextract/pkg/alf"
)

// Document はYAML出力のトップレベル
type Document struct {
	Index    string    `yaml:"index"`
	Magic    string    `yaml:"magic"`
	Title    string    `yaml:"title"`
	Variant  string    `yaml:"variant"`
	Records  int       `yaml:"records"`
	Skipped  int       `yaml:"skipped,omitempty"`
	Archives []Archive `yaml:"archives"`
}

// Archive は1つのアーカイブとその抽出対象エントリ
type Archive struct {
	Name    string  `yaml:"name"`
	Path    string  `yaml:"path"`
	Output  string  `yaml:"output"`
	Entries []Entry `yaml:"entries,omitempty"`

	// Unopened は抽出対象がなく、抽出時にも開かれないアーカイブ
	Unopened bool `yaml:"unopened,omitempty"`
}

// Entry は1エントリの位置情報
type Entry struct {
	Name   string `yaml:"name"`
	Offset Hex    `yaml:"offset"`
	Length uint32 `yaml:"length"`
}

// Hex は16進数で出力する整数
type Hex uint32

var _ yaml.Marshaler = Hex(0)

// MarshalYAML は 0x 付きの8桁16進数として出力します
func (h Hex) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("0x%08X", uint32(h)),
	}, nil
}

// NewDocument はインデックスとディレクトリからDocumentを組み立てます。
// output は各アーカイブの出力先を返す関数です。
func NewDocument(indexPath string, idx *alf.Index, dir *alf.Directory, output func(alf.Archive) string) *Document {
	doc := &Document{
		Index:    indexPath,
		Magic:    idx.Magic,
		Title:    idx.Title,
		Variant:  dir.Variant.String(),
		Records:  dir.Records,
		Skipped:  dir.Skipped,
		Archives: make([]Archive, len(dir.Archives)),
	}

	for i, arc := range dir.Archives {
		a := Archive{
			Name:   arc.Name,
			Path:   arc.Path,
			Output: output(arc),
		}
		if i < len(dir.Queues) {
			for _, e := range dir.Queues[i] {
				a.Entries = append(a.Entries, Entry{
					Name:   e.Name,
					Offset: Hex(e.Offset),
					Length: e.Length,
				})
			}
		}
		a.Unopened = len(a.Entries) == 0
		doc.Archives[i] = a
	}
	return doc
}

// Write はDocumentをYAMLとして書き出します
func Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
