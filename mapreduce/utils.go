package mapreduce

// divideByBlocks splits dataSize items across at most threadCount workers,
// and at most ceil(dataSize/minPerThread) of them, and returns the
// resulting block size (dataSize divided by the worker count, rounded
// down) and actual worker count. Grounded on
// MapReduce::divideByBlocks in utils.hpp. Only the map stage calls this;
// the reduce stage always spawns exactly reducerCount tasks regardless of
// how the intermediate keys distribute across buckets.
func divideByBlocks(dataSize, threadCount, minPerThread int) (blockSize, numThreads int) {
	if dataSize == 0 {
		return 0, 0
	}
	maxThreads := (dataSize + minPerThread - 1) / minPerThread
	numThreads = threadCount
	if maxThreads < numThreads {
		numThreads = maxThreads
	}
	blockSize = dataSize / numThreads
	return blockSize, numThreads
}
