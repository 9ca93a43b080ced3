// Package lzss はAGEエンジンのインデックスで使われるLZSS圧縮を扱います。
//
// フォーマット:
//   - フラグ1バイトで後続8トークンの種類を表す（下位ビットから消費）
//   - ビット1はリテラル1バイト、ビット0は2バイトの後方参照
//   - 後方参照はリング位置12ビット（lo | (hi&0xF0)<<4）と長さ4ビット（(hi&0x0F)+3）
//   - 窓は4096バイト、書き込み位置は 4096-18 から始まり、窓全体を埋め値で初期化する
//
// 基本的な使い方:
//
//	dir, err := lzss.Decompress(comp, size, nil)
//	if err != nil {
//	    return err
//	}
package lzss

import "errors"

const (
	// WindowSize はスライド窓（リングバッファ）のサイズ
	WindowSize = 0x1000

	// MaxMatch は後方参照1つで表せる最大長
	MaxMatch = 18

	// Threshold はこれ以下の一致長をリテラルとして出力する閾値
	Threshold = 2

	windowMask = WindowSize - 1
	startPos   = WindowSize - MaxMatch
)

// ErrCorrupt は圧縮データが壊れている場合のエラー
var ErrCorrupt = errors.New("LZSSデータが壊れています")

// Options は圧縮・展開のパラメータ
type Options struct {
	// Fill は窓の初期化に使う値（エンジンは0x00）
	Fill byte

	// Unseeded が true の場合、窓を初期化せず出力開始位置より前への参照をエラーにします
	Unseeded bool
}

var defaultOptions = Options{}

func (o *Options) seedLen() int {
	if o.Unseeded {
		return 0
	}
	return WindowSize
}

// seededBuffer は先頭に初期化済みの窓を持つ作業バッファを作成します
func (o *Options) seededBuffer(extra int) []byte {
	seed := o.seedLen()
	buf := make([]byte, seed, seed+extra)
	if o.Fill != 0 {
		for i := range buf {
			buf[i] = o.Fill
		}
	}
	return buf
}
