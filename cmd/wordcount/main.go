// Command wordcount counts word frequencies across the lines of a text
// file using the mapreduce package. Grounded on
// original_source/mapreduce/examples/wordcount/wordcount.cpp.
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
	mapreduce.RegisterMapper("WordCountMapper", func() mapreduce.Mapper { return wordCountMapper{} })
	mapreduce.RegisterReducer("WordCountReducer", func() mapreduce.Reducer { return wordCountReducer{} })
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
	for counter := 0; scanner.Scan(); counter++ {
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
		if _, err := fmt.Fprintf(w, "%s %s\n", r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	mapperCount := flag.Int("mappers", 4, "number of map tasks")
	reducerCount := flag.Int("reducers", 2, "number of reduce tasks")
	out := flag.String("out", "output.txt", "output file path")
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	if flag.NArg() < 1 {
		log.Fatal("usage: wordcount [flags] text.txt")
	}

	sentences, err := readLines(flag.Arg(0))
	if err != nil {
		log.Fatal("reading input", zap.Error(err))
	}

	spec := mapreduce.NewSpecification()
	spec.Dataset = mapreduce.NewSliceDataset(sentences)
	spec.Mapper = "WordCountMapper"
	spec.Reducer = "WordCountReducer"
	spec.MapperCount = *mapperCount
	spec.ReducerCount = *reducerCount

	results, err := mapreduce.RunComputation(context.Background(), spec)
	if err != nil {
		log.Fatal("running computation", zap.Error(err))
	}

	if err := writeOutput(*out, results); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
	log.Info("word count complete", zap.Int("distinct_words", len(results)))
}
