package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCountMapper_EmitsOnePerWord(t *testing.T) {
	var got []string
	wordCountMapper{}.Map("0", "the cat sat", func(key, value string) {
		assert.Equal(t, "1", value)
		got = append(got, key)
	})
	assert.Equal(t, []string{"the", "cat", "sat"}, got)
}

func TestWordCountReducer_SumsOccurrences(t *testing.T) {
	var key, value string
	wordCountReducer{}.Reduce("the", []string{"1", "1", "1"}, func(k, v string) {
		key, value = k, v
	})
	assert.Equal(t, "the", key)
	assert.Equal(t, "3", value)
}
