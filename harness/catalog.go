package harness

import (
	"strings"

	"github.com/kbukum/rxkit/stream"
)

// Build turns a recipe's input producers into the producer under test.
type Build func(inputs []*stream.Producer[string]) *stream.Producer[string]

// Solution builds a Build from a recipe's Count parameter.
type Solution func(count int) Build

// Catalog holds the named solutions recipe books refer to. Single-input
// solutions merge their inputs first, which keeps order for one input.
var Catalog = map[string]Solution{
	"distinct":             merged(func(int) stream.Operator[string, string] { return stream.Distinct[string]() }),
	"distinctUntilChanged": merged(func(int) stream.Operator[string, string] { return stream.DistinctUntilChanged[string]() }),
	"skip":                 merged(stream.Skip[string]),
	"take":                 merged(stream.Take[string]),
	"skipLast":             merged(stream.SkipLast[string]),
	"takeLast":             merged(stream.TakeLast[string]),
	"repeat":               merged(stream.Repeat[string]),
	"merge-fresh":          merged(func(int) stream.Operator[string, string] { return stream.Filter(isFresh) }),
	"zip":                  func(int) Build { return zipFlat },
}

func merged(op func(count int) stream.Operator[string, string]) Solution {
	return func(count int) Build {
		return func(inputs []*stream.Producer[string]) *stream.Producer[string] {
			return op(count)(stream.Merge(inputs...))
		}
	}
}

func isFresh(fruit string) bool {
	return !strings.Contains(fruit, "old")
}

// zipFlat pairs the inputs by index and flattens each row back into values.
func zipFlat(inputs []*stream.Producer[string]) *stream.Producer[string] {
	flatten := stream.ConcatMapSlice(func(row []string) []string { return row })
	return flatten(stream.Zip(inputs...))
}
