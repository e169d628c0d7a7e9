package plinko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk_Lazy(t *testing.T) {
	src := NewSequence(true, false)
	seq := Walk(6, src)
	assert.Zero(t, src.Consumed(), "nothing drawn before iteration")

	var got []int
	for r, col := range seq {
		got = append(got, col)
		assert.Equal(t, r+1, src.Consumed())
		if r == 2 {
			break
		}
	}
	assert.Equal(t, []int{5, 4, 5}, got)
}

func TestWalk_SingleUse(t *testing.T) {
	seq := Walk(4, NewSeededSource(3))

	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 4, n)

	for range seq {
		t.Fatal("second iteration must yield nothing")
	}
}

func TestWalk_FreshSequencePerCall(t *testing.T) {
	src := NewSequence(true)
	a := Trajectory(3, src)
	b := Trajectory(3, src)
	assert.Equal(t, []int{5, 6, 7}, a)
	assert.Equal(t, a, b)
}

func TestTrajectory_ZeroRows(t *testing.T) {
	assert.Nil(t, Trajectory(0, NewSequence(true)))
}

func TestSequence(t *testing.T) {
	s := NewSequence()
	assert.False(t, s.NextBool())

	s = Moves(1, -1)
	assert.True(t, s.NextBool())
	assert.False(t, s.NextBool())
	assert.True(t, s.NextBool(), "wraps around")
	assert.Equal(t, 3, s.Consumed())
}

func TestSeededSource_Fair(t *testing.T) {
	const n = 100000
	src := NewSeededSource(42)
	ones := 0
	for i := 0; i < n; i++ {
		if src.NextBool() {
			ones++
		}
	}
	freq := float64(ones) / n
	assert.InDelta(t, 0.5, freq, 0.01)
}

func TestDefaultSource_BothOutcomes(t *testing.T) {
	src := DefaultSource()
	seen := map[bool]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		seen[src.NextBool()] = true
	}
	assert.Len(t, seen, 2)
}
