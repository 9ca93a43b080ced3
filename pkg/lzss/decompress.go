package lzss

import "fmt"

// Decompress は src を展開し、ちょうど size バイトを返します。
// opts が nil の場合はエンジンと同じ既定値（埋め値0x00、窓初期化あり）を使います。
//
// size バイトに達する前に入力が尽きた場合と、出力開始位置より前を参照した場合は
// ErrCorrupt をラップしたエラーを返します。
func Decompress(src []byte, size int, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = &defaultOptions
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: 不正な展開サイズ %d", ErrCorrupt, size)
	}

	seed := opts.seedLen()
	// 1トークンは最大18バイトに展開されるので、それ以上は確保しない
	buf := opts.seededBuffer(min(size, len(src)*MaxMatch/2+1))
	r := startPos // 次に書き込むリング位置
	pos := 0
	var flags uint

	for len(buf)-seed < size {
		flags >>= 1
		if flags&0x100 == 0 {
			if pos >= len(src) {
				return nil, truncated(pos, len(buf)-seed, size)
			}
			flags = uint(src[pos]) | 0xFF00
			pos++
		}

		if flags&1 != 0 {
			if pos >= len(src) {
				return nil, truncated(pos, len(buf)-seed, size)
			}
			buf = append(buf, src[pos])
			pos++
			r = (r + 1) & windowMask
			continue
		}

		if pos+1 >= len(src) {
			return nil, truncated(pos, len(buf)-seed, size)
		}
		lo, hi := int(src[pos]), int(src[pos+1])
		pos += 2

		ring := lo | (hi&0xF0)<<4
		length := hi&0x0F + Threshold + 1

		// リング位置を現在の書き込み位置からの距離に直す。
		// ring == r は窓をちょうど一周した位置を指す。
		dist := (r - ring) & windowMask
		if dist == 0 {
			dist = WindowSize
		}
		from := len(buf) - dist
		if from < 0 {
			return nil, fmt.Errorf("%w: 出力開始位置より前を参照しています (距離 %d, 出力済み %d バイト)", ErrCorrupt, dist, len(buf)-seed)
		}

		for k := 0; k < length && len(buf)-seed < size; k++ {
			buf = append(buf, buf[from+k])
		}
		r = (r + length) & windowMask
	}

	return buf[seed:], nil
}

func truncated(pos, produced, size int) error {
	return fmt.Errorf("%w: 入力が %d バイト目で尽きました (出力 %d/%d バイト)", ErrCorrupt, pos, produced, size)
}
