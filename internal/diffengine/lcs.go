package diffengine

// pair records that left line l matched right line r during alignment.
type pair struct {
	l, r int
}

// dpCellLimit bounds the n*m matrix size for the dynamic-programming LCS.
// Inputs whose matrix would exceed it fall back to the greedy Myers search,
// which is linear in space per depth and faster for mostly-similar documents.
const dpCellLimit = 1 << 22

// matchLines returns the longest common subsequence between a and b as a list
// of matched index pairs, ascending on both sides. Common prefixes and
// suffixes are matched directly before running the core algorithm.
func matchLines(a, b []string) []pair {
	n, m := len(a), len(b)

	// Common prefix.
	p := 0
	for p < n && p < m && a[p] == b[p] {
		p++
	}
	// Common suffix, not overlapping the prefix.
	s := 0
	for s < n-p && s < m-p && a[n-1-s] == b[m-1-s] {
		s++
	}

	matches := make([]pair, 0, p+s)
	for i := 0; i < p; i++ {
		matches = append(matches, pair{i, i})
	}

	midA, midB := a[p:n-s], b[p:m-s]
	var mid []pair
	if len(midA) > 0 && len(midB) > 0 {
		if len(midA)*len(midB) <= dpCellLimit {
			mid = lcsMatch(midA, midB)
		} else {
			mid = myersMatch(midA, midB)
		}
	}
	for _, pr := range mid {
		matches = append(matches, pair{pr.l + p, pr.r + p})
	}

	for i := s; i > 0; i-- {
		matches = append(matches, pair{n - i, m - i})
	}
	return matches
}

// lcsMatch is the classic O(n*m) dynamic-programming LCS with traceback.
// The traceback prefers diagonals, keeping matched runs maximal, and on ties
// takes deletions before insertions so contiguous changes stay grouped.
func lcsMatch(a, b []string) []pair {
	n, m := len(a), len(b)
	width := m + 1
	table := make([]int32, (n+1)*width)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				table[i*width+j] = table[(i-1)*width+j-1] + 1
			} else if table[(i-1)*width+j] >= table[i*width+j-1] {
				table[i*width+j] = table[(i-1)*width+j]
			} else {
				table[i*width+j] = table[i*width+j-1]
			}
		}
	}

	var rev []pair
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1] && table[i*width+j] == table[(i-1)*width+j-1]+1:
			rev = append(rev, pair{i - 1, j - 1})
			i--
			j--
		case table[(i-1)*width+j] >= table[i*width+j-1]:
			i--
		default:
			j--
		}
	}

	out := make([]pair, len(rev))
	for k, pr := range rev {
		out[len(rev)-1-k] = pr
	}
	return out
}

// myersMatch is the greedy O(ND) shortest-edit-script search from Myers'
// "An O(ND) Difference Algorithm and Its Variations", with a full trace kept
// for backtracking. The greedy traceback yields maximal snakes, which keeps
// diffs stable and human-readable.
func myersMatch(a, b []string) []pair {
	n, m := len(a), len(b)
	maxD := n + m
	if maxD == 0 {
		return nil
	}

	offset := maxD + 1
	v := make([]int, 2*maxD+3)
	var trace [][]int

	found := false
	for d := 0; d <= maxD && !found; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				found = true
				break
			}
		}
	}

	var rev []pair
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vPrev := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && vPrev[offset+k-1] < vPrev[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vPrev[offset+prevK]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			rev = append(rev, pair{x - 1, y - 1})
			x--
			y--
		}
		if d > 0 {
			x, y = prevX, prevY
		}
	}

	out := make([]pair, len(rev))
	for k, pr := range rev {
		out[len(rev)-1-k] = pr
	}
	return out
}
