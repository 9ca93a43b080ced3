package lzss

// Compress は src を Decompress で展開できる形式に圧縮します。
// 最長一致を貪欲に選ぶ単純な実装で、テスト用のインデックス生成に使います。
func Compress(src []byte, opts *Options) []byte {
	if opts == nil {
		opts = &defaultOptions
	}

	seed := opts.seedLen()
	hist := append(opts.seededBuffer(len(src)), src...)
	out := make([]byte, 0, len(src)+len(src)/8+1)

	r := startPos
	flagIdx := 0
	bit := 8

	for p := 0; p < len(src); {
		if bit == 8 {
			flagIdx = len(out)
			out = append(out, 0)
			bit = 0
		}

		cur := seed + p
		bestLen, bestDist := 0, 0
		maxLen := min(MaxMatch, len(src)-p)
		if maxLen > Threshold {
			for dist := 1; dist <= WindowSize && dist <= cur; dist++ {
				from := cur - dist
				n := 0
				for n < maxLen && hist[from+n] == hist[cur+n] {
					n++
				}
				if n > bestLen {
					bestLen, bestDist = n, dist
					if n == maxLen {
						break
					}
				}
			}
		}

		if bestLen > Threshold {
			ring := (r - bestDist) & windowMask
			out = append(out, byte(ring), byte((ring>>4)&0xF0)|byte(bestLen-Threshold-1))
			p += bestLen
			r = (r + bestLen) & windowMask
		} else {
			out[flagIdx] |= 1 << bit
			out = append(out, src[p])
			p++
			r = (r + 1) & windowMask
		}
		bit++
	}

	return out
}
