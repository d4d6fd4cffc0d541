package skew

import (
	"math/rand"
	"slices"
	"sort"
	"testing"
)

func TestBucketSortEmpty(t *testing.T) {
	got := BucketSort(nil, 10, func(e int) int { return e })
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestBucketSortGroupsAscending(t *testing.T) {
	items := []int{3, 1, 0, 3, 2, 1, 0}
	got := BucketSort(items, 3, func(e int) int { return e })
	prev := -1
	for _, idx := range got {
		if items[idx] < prev {
			t.Fatalf("keys not ascending: %v", got)
		}
		prev = items[idx]
	}
	checkIndexPermutation(t, got, len(items))
}

func TestBucketSortStable(t *testing.T) {
	type pair struct{ key, tag int }
	items := []pair{{1, 0}, {0, 1}, {1, 2}, {0, 3}, {1, 4}}
	got := BucketSort(items, 1, func(p pair) int { return p.key })
	want := []int{1, 3, 0, 2, 4}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRadixSortPrefixSortsFirst(t *testing.T) {
	items := [][]int{{1, 2}, {1}, {1, 2, 3}, {}, {1, 2, 0}}
	got := RadixSort(items, 3, 3, func(e []int, pos int) (int, bool) {
		if pos >= len(e) {
			return 0, false
		}
		return e[pos], true
	})
	want := []int{3, 1, 0, 4, 2} // {} < {1} < {1,2} < {1,2,0} < {1,2,3}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRadixSortMatchesComparison(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for trial := 0; trial < 100; trial++ {
		count := r.Intn(50)
		width := 1 + r.Intn(4)
		maxKey := 1 + r.Intn(5)
		items := make([][]int, count)
		for i := range items {
			e := make([]int, r.Intn(width+1))
			for j := range e {
				e[j] = r.Intn(maxKey + 1)
			}
			items[i] = e
		}

		order := RadixSort(items, width, maxKey, func(e []int, pos int) (int, bool) {
			if pos >= len(e) {
				return 0, false
			}
			return e[pos], true
		})
		checkIndexPermutation(t, order, count)

		sorted := make([][]int, count)
		for k, idx := range order {
			sorted[k] = items[idx]
		}
		want := slices.Clone(items)
		sort.SliceStable(want, func(a, b int) bool {
			return slices.Compare(want[a], want[b]) < 0
		})
		for k := range want {
			if !slices.Equal(sorted[k], want[k]) {
				t.Fatalf("trial %d: sorted %v, want %v", trial, sorted, want)
			}
		}
	}
}

func TestRanksSharesTies(t *testing.T) {
	vals := []int{4, 4, 7, 9, 9, 9, 12}
	sorted := []int{0, 1, 2, 3, 4, 5, 6}
	got := Ranks(sorted, func(a, b int) bool { return vals[a] == vals[b] })
	want := []int{1, 1, 2, 3, 3, 3, 4}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// When no adjacent pair is equal, the ranks must be exactly 1..m in
// sorted order; the constructor's base case reads the sorted order
// straight off them, so contiguity is load-bearing, not incidental.
func TestRanksUniqueAreContiguous(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 20; trial++ {
		m := r.Intn(100)
		sorted := make([]int, m)
		for i := range sorted {
			sorted[i] = i
		}
		got := Ranks(sorted, func(a, b int) bool { return false })
		for k, rk := range got {
			if rk != k+1 {
				t.Fatalf("rank at %d: got %d, want %d", k, rk, k+1)
			}
		}
	}
}

func TestRanksEmpty(t *testing.T) {
	got := Ranks(nil, func(a, b int) bool { return true })
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestHasAdjacentDuplicate(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	tests := []struct {
		name  string
		items []int
		want  bool
	}{
		{"empty", nil, false},
		{"single", []int{1}, false},
		{"unique", []int{1, 2, 3}, false},
		{"adjacent", []int{1, 2, 2, 3}, true},
		{"non-adjacent equal", []int{1, 2, 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasAdjacentDuplicate(tc.items, eq); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func checkIndexPermutation(t *testing.T, perm []int, n int) {
	t.Helper()
	if len(perm) != n {
		t.Fatalf("length: got %d, want %d", len(perm), n)
	}
	seen := make([]bool, n)
	for _, i := range perm {
		if i < 0 || i >= n || seen[i] {
			t.Fatalf("not a permutation: %v", perm)
		}
		seen[i] = true
	}
}
