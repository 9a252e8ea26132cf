// Command invertedindex builds an inverted index (word -> line numbers)
// over a text file using the mapreduce package. Grounded on
// original_source/mapreduce/examples/inverted_index/inverted_index.cpp.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vkolesnikov/partool/mapreduce"
)

type invertedIndexMapper struct{}

func (invertedIndexMapper) Map(key, value string, emit func(key, value string)) {
	for _, word := range strings.Fields(value) {
		emit(word, key)
	}
}

type invertedIndexReducer struct{}

func (invertedIndexReducer) Reduce(key string, values []string, emit func(key, value string)) {
	emit(key, strings.Join(values, ", "))
}

func init() {
	mapreduce.RegisterMapper("InvertedIndexMapper", func() mapreduce.Mapper { return invertedIndexMapper{} })
	mapreduce.RegisterReducer("InvertedIndexReducer", func() mapreduce.Reducer { return invertedIndexReducer{} })
}

func readLines(path string) ([]mapreduce.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []mapreduce.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for counter := 1; scanner.Scan(); counter++ {
		records = append(records, mapreduce.Record{Key: strconv.Itoa(counter), Value: scanner.Text()})
	}
	return records, scanner.Err()
}

func writeOutput(path string, results []mapreduce.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s -> [%s]\n", r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	mapperCount := flag.Int("mappers", 2, "number of map tasks")
	reducerCount := flag.Int("reducers", 2, "number of reduce tasks")
	out := flag.String("out", "output.txt", "output file path")
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	if flag.NArg() < 1 {
		log.Fatal("usage: invertedindex [flags] text.txt")
	}

	sentences, err := readLines(flag.Arg(0))
	if err != nil {
		log.Fatal("reading input", zap.Error(err))
	}

	spec := mapreduce.NewSpecification()
	spec.Dataset = mapreduce.NewSliceDataset(sentences)
	spec.Mapper = "InvertedIndexMapper"
	spec.Reducer = "InvertedIndexReducer"
	spec.MapperCount = *mapperCount
	spec.ReducerCount = *reducerCount

	results, err := mapreduce.RunComputation(context.Background(), spec)
	if err != nil {
		log.Fatal("running computation", zap.Error(err))
	}

	if err := writeOutput(*out, results); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
	log.Info("inverted index complete", zap.Int("distinct_words", len(results)))
}
