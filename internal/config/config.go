// Package config はalfextractコマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// DefaultPlainArchives は平文形式のインデックスで読み取るアーカイブ数の既定値
const DefaultPlainArchives = 1

// Config はアプリケーションの設定を保持します
type Config struct {
	IndexPath     string
	ArchiveDir    string
	OutputDir     string
	Filter        string
	PlainArchives int
	ListOnly      bool
	KeepGoing     bool
	DryRun        bool
	DebugMode     bool
	ShowVersion   bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s: [options] [index-file]\n", os.Args[0])
		fmt.Fprintln(out, "  --index string")
		fmt.Fprintln(out, "    \tpath to index file (e.g. SYS5INI.BIN, APPEND01.AAI)")
		fmt.Fprintln(out, "  -i string")
		fmt.Fprintln(out, "    \tpath to index file (shorthand)")
		fmt.Fprintln(out, "  -C string")
		fmt.Fprintln(out, "    \tdirectory the archive files are resolved against (default: directory of the index file)")
		fmt.Fprintln(out, "  -o string")
		fmt.Fprintln(out, "    \toutput directory for the extracted files (default \".\")")
		fmt.Fprintln(out, "  --filter string")
		fmt.Fprintln(out, "    \textract only entries whose name contains this text (case-insensitive)")
		fmt.Fprintln(out, "  -f string")
		fmt.Fprintln(out, "    \tfilter (shorthand)")
		fmt.Fprintln(out, "  --list")
		fmt.Fprintln(out, "    \tprint the directory as YAML instead of extracting")
		fmt.Fprintln(out, "  -l\tprint the directory as YAML (shorthand)")
		fmt.Fprintln(out, "  --keep-going")
		fmt.Fprintln(out, "    \tcontinue past failed entries and report a summary")
		fmt.Fprintln(out, "  -k\tcontinue past failed entries (shorthand)")
		fmt.Fprintln(out, "  --dry-run")
		fmt.Fprintln(out, "    \tperform a dry run without writing output files")
		fmt.Fprintln(out, "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(out, "  --plain-archives int")
		fmt.Fprintln(out, "    \tnumber of archive blocks in a plain index (default 1, values above 1 are untested)")
		fmt.Fprintln(out, "  --debug")
		fmt.Fprintln(out, "    \tenable debug output")
		fmt.Fprintln(out, "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(out, "  --version")
		fmt.Fprintln(out, "    \tshow version information")
		fmt.Fprintln(out, "  -v\tshow version information (shorthand)")
	}

	// インデックスフラグ
	flag.StringVar(&config.IndexPath, "index", "", "path to index file (e.g. SYS5INI.BIN)")
	flag.StringVar(&config.IndexPath, "i", "", "path to index file (shorthand)")

	// アーカイブディレクトリ
	flag.StringVar(&config.ArchiveDir, "C", "", "directory the archive files are resolved against")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", ".", "output directory for the extracted files")

	// フィルタ
	flag.StringVar(&config.Filter, "filter", "", "extract only entries whose name contains this text (case-insensitive)")
	flag.StringVar(&config.Filter, "f", "", "filter (shorthand)")

	// 一覧表示
	flag.BoolVar(&config.ListOnly, "list", false, "print the directory as YAML instead of extracting")
	flag.BoolVar(&config.ListOnly, "l", false, "print the directory as YAML (shorthand)")

	// 継続モード
	flag.BoolVar(&config.KeepGoing, "keep-going", false, "continue past failed entries and report a summary")
	flag.BoolVar(&config.KeepGoing, "k", false, "continue past failed entries (shorthand)")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// 平文形式のアーカイブ数
	flag.IntVar(&config.PlainArchives, "plain-archives", DefaultPlainArchives, "number of archive blocks in a plain index")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	// フラグで指定がなければ最初の引数をインデックスとして扱う
	if config.IndexPath == "" && flag.NArg() > 0 {
		config.IndexPath = flag.Arg(0)
	}

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("alfextract version %s\n", Version)
		os.Exit(0)
	}
}
