package pqueue

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinomialQueue_EmptyQueueErrors(t *testing.T) {
	q := NewBinomial[string](Less[int]())
	_, _, err := q.Top()
	assert.True(t, errors.Is(err, ErrEmptyQueue))
	_, _, err = q.ExtractTop()
	assert.True(t, errors.Is(err, ErrEmptyQueue))
}

func TestBinomialQueue_MonotonicExtractionMillion(t *testing.T) {
	// Spec §8 scenario 2.
	q := NewBinomial[int](Less[int]())
	rng := rand.New(rand.NewSource(7))

	const n = 1_000_000
	for i := 0; i < n; i++ {
		q.Insert(i, rng.Intn(n))
	}
	require.Equal(t, n, q.Len())

	prev := 1<<63 - 1
	for i := 0; i < n; i++ {
		_, p, err := q.ExtractTop()
		require.NoError(t, err)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}
	assert.True(t, q.Empty())
}

func TestBinomialQueue_UpdatePriorityScenario(t *testing.T) {
	// Spec §8 scenario 3, see binary_test.go's comment for why the
	// comparer is inverted relative to the scenario's label.
	q := NewBinomial[int](func(a, b int) bool { return a > b })

	h15 := q.Insert(15, 12)
	h23 := q.Insert(23, 9)
	h24 := q.Insert(24, 7)
	h16 := q.Insert(16, 42)
	q.Insert(100, 24)

	require.NoError(t, q.UpdatePriority(h15, 1))
	key, pri, err := q.ExtractTop()
	require.NoError(t, err)
	assert.Equal(t, 15, key)
	assert.Equal(t, 1, pri)

	require.NoError(t, q.UpdatePriority(h23, 5))
	key, pri, err = q.ExtractTop()
	require.NoError(t, err)
	assert.Equal(t, 23, key)
	assert.Equal(t, 5, pri)

	require.NoError(t, q.UpdatePriority(h16, 41))
	key, pri, err = q.Top()
	require.NoError(t, err)
	assert.Equal(t, 24, key)
	assert.Equal(t, 7, pri)

	assert.False(t, h15.IsValid())

	require.True(t, h24.IsValid())
	_, pri, err = h24.Node()
	require.NoError(t, err)
	assert.Equal(t, 7, pri)
}

func TestBinomialQueue_UpdatePriorityRejectsUnfavorableMove(t *testing.T) {
	q := NewBinomial[int](Less[int]())
	h := q.Insert(1, 10)
	err := q.UpdatePriority(h, 9)
	assert.True(t, errors.Is(err, ErrMonotonicityViolation))
}

func TestBinomialQueue_ClearInvalidatesHandles(t *testing.T) {
	q := NewBinomial[int](Less[int]())
	h := q.Insert(1, 10)
	require.True(t, h.IsValid())

	q.Clear()
	assert.False(t, h.IsValid())
	assert.True(t, q.Empty())
}

func TestBinomialQueue_CrossQueueHandleRejected(t *testing.T) {
	// Spec §8 scenario 6.
	q1 := NewBinomial[int](Less[int]())
	q2 := NewBinomial[int](Less[int]())

	h := q1.Insert(1, 10)
	err := q2.UpdatePriority(h, 20)
	assert.True(t, errors.Is(err, ErrInvalidHandle))
}

func TestBinomialQueue_HandleTracksBubblingContent(t *testing.T) {
	q := NewBinomial[string](Less[int]())
	handles := make([]*BinomialHandle[string, int], 0, 16)
	for i := 0; i < 16; i++ {
		handles = append(handles, q.Insert(string(rune('a'+i)), i))
	}

	target := handles[0] // key "a", priority 0
	require.NoError(t, q.UpdatePriority(target, 1000))

	key, pri, err := target.Node()
	require.NoError(t, err)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1000, pri)

	topKey, topPri, err := q.Top()
	require.NoError(t, err)
	assert.Equal(t, "a", topKey)
	assert.Equal(t, 1000, topPri)
}
