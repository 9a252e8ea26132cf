package mapreduce

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wordCountMapper struct{}

func (wordCountMapper) Map(_, value string, emit func(key, value string)) {
	for _, word := range strings.Fields(value) {
		emit(word, "1")
	}
}

type wordCountReducer struct{}

func (wordCountReducer) Reduce(key string, values []string, emit func(key, value string)) {
	total := 0
	for _, v := range values {
		n, _ := strconv.Atoi(v)
		total += n
	}
	emit(key, strconv.Itoa(total))
}

func init() {
	RegisterMapper("test.WordCountMapper", func() Mapper { return wordCountMapper{} })
	RegisterReducer("test.WordCountReducer", func() Reducer { return wordCountReducer{} })
}

func TestRunComputation_WordCountScenario(t *testing.T) {
	// Spec §8 scenario 1.
	spec := NewSpecification()
	spec.Dataset = NewSliceDataset([]Record{
		{Key: "0", Value: "the cat sat"},
		{Key: "1", Value: "the mat sat"},
	})
	spec.Mapper = "test.WordCountMapper"
	spec.Reducer = "test.WordCountReducer"
	spec.MapperCount = 3
	spec.ReducerCount = 2

	out, err := RunComputation(context.Background(), spec)
	require.NoError(t, err)

	got := map[string]string{}
	for _, r := range out {
		got[r.Key] = r.Value
	}
	assert.Equal(t, map[string]string{
		"the": "2",
		"cat": "1",
		"sat": "2",
		"mat": "1",
	}, got)
}

func TestRunComputation_OutputKeysPartitionedExactlyOnce(t *testing.T) {
	var records []Record
	for i := 0; i < 500; i++ {
		records = append(records, Record{Key: strconv.Itoa(i % 50), Value: "x " + strconv.Itoa(i)})
	}

	spec := NewSpecification()
	spec.Dataset = NewSliceDataset(records)
	spec.Mapper = "test.WordCountMapper"
	spec.Reducer = "test.WordCountReducer"
	spec.MapperCount = 4
	spec.ReducerCount = 5

	out, err := RunComputation(context.Background(), spec)
	require.NoError(t, err)

	keyCount := map[string]int{}
	for _, r := range out {
		keyCount[r.Key]++
	}
	for key, n := range keyCount {
		assert.Equalf(t, 1, n, "key %q reached more than one reducer", key)
	}
	// every distinct "x"-word plus every numeric key from 0..49 appears
	assert.Len(t, keyCount, 51)

	sorted := make([]string, 0, len(keyCount))
	for k := range keyCount {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	assert.Contains(t, sorted, "x")
	assert.Contains(t, sorted, "0")
	assert.Contains(t, sorted, "49")
}

func TestRunComputation_InvalidSpecification(t *testing.T) {
	spec := NewSpecification()
	_, err := RunComputation(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpecification))
}

func TestSpecification_ValidateRejectsZeroCounts(t *testing.T) {
	spec := NewSpecification()
	spec.Dataset = NewSliceDataset([]Record{{Key: "0", Value: "a"}})
	spec.Mapper = "test.WordCountMapper"
	spec.Reducer = "test.WordCountReducer"
	spec.MapperCount = 0

	err := spec.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpecification))
}

func TestRunComputation_UnregisteredMapper(t *testing.T) {
	spec := NewSpecification()
	spec.Dataset = NewSliceDataset([]Record{{Key: "0", Value: "a"}})
	spec.Mapper = "does.not.exist"
	spec.Reducer = "test.WordCountReducer"

	_, err := RunComputation(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRegistered))
}

func TestDivideByBlocks_CapsAtDataSize(t *testing.T) {
	blockSize, numThreads := divideByBlocks(3, 8, 1)
	assert.Equal(t, 3, numThreads)
	assert.Equal(t, 1, blockSize)

	blockSize, numThreads = divideByBlocks(0, 8, 1)
	assert.Equal(t, 0, numThreads)
	assert.Equal(t, 0, blockSize)
}

func TestDefaultPartitioner_Deterministic(t *testing.T) {
	a := DefaultPartitioner("hello", 7)
	b := DefaultPartitioner("hello", 7)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 7)
}
