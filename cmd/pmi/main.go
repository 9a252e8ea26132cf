// Command pmi computes normalized pointwise mutual information (NPMI) for
// adjacent word pairs across the lines of a text file, using two
// sequential mapreduce computations: one to count single-word
// frequencies, one to count pair frequencies and turn them into NPMI
// scores. Grounded on original_source/mapreduce/examples/pmi/pmi.cpp.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vkolesnikov/partool/mapreduce"
)

func toLower(s string) string { return strings.ToLower(s) }

type wordCountMapper struct{}

func (wordCountMapper) Map(_, value string, emit func(key, value string)) {
	for _, word := range strings.Fields(value) {
		emit(toLower(word), "1")
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

type pmiMapper struct{}

func (pmiMapper) Map(_, value string, emit func(key, value string)) {
	words := strings.Fields(value)
	for i := 0; i+1 < len(words); i++ {
		emit(toLower(words[i])+" "+toLower(words[i+1]), "1")
	}
}

// pmiInput is the data every pmiReducer instance needs beyond the
// (key, values) pair it receives: single-word counts gathered by the
// first computation, plus the total number of input sentences. Grounded
// on pmi.cpp's InputData struct passed through Specification::userData_.
type pmiInput struct {
	counts             map[string]int
	totalSentenceCount int
}

type pmiReducer struct {
	data pmiInput
}

func (r *pmiReducer) SetUserData(data any) { r.data = data.(pmiInput) }

func (r *pmiReducer) Reduce(key string, values []string, emit func(key, value string)) {
	occurrences := 0
	for _, v := range values {
		n, _ := strconv.Atoi(v)
		occurrences += n
	}

	parts := strings.Fields(key)
	if len(parts) != 2 {
		return
	}
	first, second := parts[0], parts[1]

	total := float64(r.data.totalSentenceCount)
	jointProb := float64(occurrences) / total
	firstProb := float64(r.data.counts[first]) / total
	secondProb := float64(r.data.counts[second]) / total

	pmi := math.Log10(jointProb / (firstProb * secondProb))
	npmi := pmi / -math.Log10(jointProb)
	emit(key, strconv.FormatFloat(npmi, 'f', -1, 64))
}

func init() {
	mapreduce.RegisterMapper("PMI.WCMapper", func() mapreduce.Mapper { return wordCountMapper{} })
	mapreduce.RegisterReducer("PMI.WCReducer", func() mapreduce.Reducer { return wordCountReducer{} })
	mapreduce.RegisterMapper("PMI.PMIMapper", func() mapreduce.Mapper { return pmiMapper{} })
	mapreduce.RegisterReducer("PMI.PMIReducer", func() mapreduce.Reducer { return &pmiReducer{} })
}

func readSentences(path string) ([]mapreduce.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []mapreduce.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	counter := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			records = append(records, mapreduce.Record{Key: strconv.Itoa(counter), Value: line})
		}
		counter++
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
		if _, err := fmt.Fprintf(w, "%s -> %s\n", r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	mapperCount := flag.Int("mappers", 2, "number of map tasks")
	reducerCount := flag.Int("reducers", 2, "number of reduce tasks")
	out := flag.String("out", "out.txt", "output file path")
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	if flag.NArg() < 1 {
		log.Fatal("usage: pmi [flags] text.txt")
	}

	sentences, err := readSentences(flag.Arg(0))
	if err != nil {
		log.Fatal("reading input", zap.Error(err))
	}

	spec := mapreduce.NewSpecification()
	spec.Dataset = mapreduce.NewSliceDataset(sentences)
	spec.MapperCount = *mapperCount
	spec.ReducerCount = *reducerCount

	spec.Mapper = "PMI.WCMapper"
	spec.Reducer = "PMI.WCReducer"
	wcResults, err := mapreduce.RunComputation(context.Background(), spec)
	if err != nil {
		log.Fatal("running word-count computation", zap.Error(err))
	}

	counts := make(map[string]int, len(wcResults))
	for _, r := range wcResults {
		n, _ := strconv.Atoi(r.Value)
		counts[r.Key] = n
	}

	spec.Mapper = "PMI.PMIMapper"
	spec.Reducer = "PMI.PMIReducer"
	spec.UserData = pmiInput{counts: counts, totalSentenceCount: len(sentences)}

	results, err := mapreduce.RunComputation(context.Background(), spec)
	if err != nil {
		log.Fatal("running pmi computation", zap.Error(err))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Value > results[j].Value })

	if err := writeOutput(*out, results); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
	log.Info("pmi complete", zap.Int("pairs", len(results)))
}
