package playlist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendSkipsEmpty(t *testing.T) {
	l := New("a.wav", "", "b.wav")
	l.Append("a.wav")
	assert.Equal(t, []string{"a.wav", "b.wav", "a.wav"}, l.Paths())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "b.wav", l.At(1))
	assert.Equal(t, "", l.At(3))
	assert.Equal(t, "", l.At(-1))
}

func TestPathsIsSnapshot(t *testing.T) {
	l := New("a.wav", "b.wav")
	snap := l.Paths()
	l.MoveDown(0)
	l.Append("c.wav")
	assert.Equal(t, []string{"a.wav", "b.wav"}, snap)
}

func TestMoveUpDownEdges(t *testing.T) {
	l := New("a", "b", "c")

	assert.Equal(t, 0, l.MoveUp(0))
	assert.Equal(t, 2, l.MoveDown(2))
	assert.Equal(t, 7, l.MoveUp(7))
	assert.Equal(t, -1, l.MoveDown(-1))
	assert.Equal(t, []string{"a", "b", "c"}, l.Paths())

	assert.Equal(t, 0, l.MoveUp(1))
	assert.Equal(t, []string{"b", "a", "c"}, l.Paths())
	assert.Equal(t, 2, l.MoveDown(1))
	assert.Equal(t, []string{"b", "c", "a"}, l.Paths())
}

// Any sequence of moves matches the same adjacent swaps on a plain slice.
func TestMovesMatchAdjacentSwaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(8)
		ref := make([]string, n)
		for i := range ref {
			ref[i] = string(rune('a' + i))
		}
		l := New(ref...)

		for step := 0; step < 30; step++ {
			i := rng.Intn(n+2) - 1
			if rng.Intn(2) == 0 {
				l.MoveUp(i)
				if i > 0 && i < n {
					ref[i-1], ref[i] = ref[i], ref[i-1]
				}
			} else {
				l.MoveDown(i)
				if i >= 0 && i < n-1 {
					ref[i], ref[i+1] = ref[i+1], ref[i]
				}
			}
		}
		assert.Equal(t, ref, l.Paths())
	}
}

func TestRemoveOrderIndependent(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e", "f"}

	orders := [][]int{
		{1, 3, 4},
		{4, 3, 1},
		{3, 1, 4},
		{1, 1, 4, 3, 99, -2},
	}
	for _, idx := range orders {
		l := New(base...)
		l.Remove(idx...)
		assert.Equal(t, []string{"a", "c", "f"}, l.Paths(), "indices %v", idx)
	}
}

func TestRemoveAllEmpties(t *testing.T) {
	l := New("a", "b", "c")
	l.Remove(0, 1, 2)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Paths())
}

func TestRemoveDuplicatesByIndex(t *testing.T) {
	l := New("a", "a", "b")
	l.Remove(1)
	assert.Equal(t, []string{"a", "b"}, l.Paths())
}

func TestClear(t *testing.T) {
	l := New("a", "b")
	l.Clear()
	assert.Equal(t, 0, l.Len())
	l.Append("c")
	assert.Equal(t, []string{"c"}, l.Paths())
}
