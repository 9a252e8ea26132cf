package mapreduce

import "github.com/cespare/xxhash/v2"

// Record is a single (key, value) pair, the unit the engine moves between
// every stage. Grounded on MapReduce::Record in base.hpp.
type Record struct {
	Key   string
	Value string
}

// Mapper transforms one input record into zero or more intermediate
// records via emit. A fresh Mapper is created per map task (see
// MapperFactory), mirroring MapJob's per-task createNewMapper call.
type Mapper interface {
	Map(key, value string, emit func(key, value string))
}

// Reducer combines every value collected for a single intermediate key
// into zero or more output records via emit. A fresh Reducer is created
// per reduce task.
type Reducer interface {
	Reduce(key string, values []string, emit func(key, value string))
}

// UserDataSetter is implemented by a Mapper or Reducer that needs access
// to Specification.UserData. The engine calls SetUserData right after
// construction, before the first Map/Reduce call, mirroring
// MapJob/ReduceJob's setUserData(spec.getUserData()).
type UserDataSetter interface {
	SetUserData(data any)
}

// MapperFactory constructs a fresh Mapper instance.
type MapperFactory func() Mapper

// ReducerFactory constructs a fresh Reducer instance.
type ReducerFactory func() Reducer

// Partitioner decides which of reducerCount reducers owns key.
type Partitioner func(key string, reducerCount int) int

// KeyComparer reports whether key a sorts strictly before key b. Grouping
// after the sort treats two keys as equal when neither compares before
// the other.
type KeyComparer func(a, b string) bool

// DefaultPartitioner hashes the key and reduces it modulo reducerCount.
// Grounded on MapReduce::DefaultPartitioner, with std::hash<std::string>
// replaced by xxhash for a stable, well-distributed 64-bit hash.
func DefaultPartitioner(key string, reducerCount int) int {
	return int(xxhash.Sum64String(key) % uint64(reducerCount))
}

// DefaultKeyComparer orders keys by plain byte-wise string comparison,
// matching std::string::operator< used by MapReduce::DefaultComparer.
func DefaultKeyComparer(a, b string) bool {
	return a < b
}

func keysEqual(cmp KeyComparer, a, b string) bool {
	return !cmp(a, b) && !cmp(b, a)
}
