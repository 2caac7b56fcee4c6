package scoring

// similarityRatio 计算两段文本的相似度，区间 [0,1]。
// 采用 Ratcliff/Obershelp 匹配块算法：2*M / (len(a)+len(b))。
func similarityRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	ar := []rune(a)
	br := []rune(b)

	matched := matchingTotal(ar, br)
	return 2.0 * float64(matched) / float64(len(ar)+len(br))
}

// matchingTotal 递归累加匹配块长度
func matchingTotal(a, b []rune) int {
	i, j, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return matchingTotal(a[:i], b[:j]) + size + matchingTotal(a[i+size:], b[j+size:])
}

// longestMatch 寻找最长公共子串，平局时取最靠前的
func longestMatch(a, b []rune) (int, int, int) {
	bestI, bestJ, bestSize := 0, 0, 0

	// j2len[j] 表示以 a[i-1]/b[j] 结尾的公共子串长度
	j2len := make(map[int]int)
	for i := 0; i < len(a); i++ {
		newJ2len := make(map[int]int)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	return bestI, bestJ, bestSize
}
