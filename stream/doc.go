// Package stream provides a push-based reactive stream core.
//
// A Producer is cold: nothing happens until Subscribe is called, and every
// subscription re-runs the producer from the start with fresh state. Values
// are pushed synchronously down a chain of operators to the subscriber's
// Observer, followed by exactly one terminal signal (OnComplete or OnError).
// Cancelling a Subscription releases every upstream subscription it owns
// within the same call.
//
// # Operators
//
// Stateless:
//
//   - Map, Filter, TryFilter, Tap
//
// Stateful, single pass:
//
//   - Distinct, DistinctBy, DistinctUntilChanged, DistinctUntilChangedFunc
//   - Skip, Take
//
// Buffering (resolved at completion):
//
//   - SkipLast, TakeLast
//
// Combination:
//
//   - Merge: values in the order produced, completes after every input
//   - Zip, ZipWith, Zip2: index-paired, the shortest input governs
//
// Flattening and repetition:
//
//   - ConcatMap, ConcatMapSlice: inner producers drained one at a time
//   - Repeat: sequential fresh subscriptions
//
// Instrumentation:
//
//   - WithLogging, WithMetrics, WithTracing, Instrument
//
// # Usage
//
//	fruits := stream.From([]string{"apple", "apple", "banana", "apple"})
//	juice := stream.Pipe(fruits,
//	    stream.Distinct[string](),
//	    stream.Take[string](2),
//	)
//	got, err := stream.Collect(ctx, juice) // [apple banana]
//
// Operators that change the element type compose with Pipe2..Pipe4:
//
//	lengths := stream.Pipe2(fruits,
//	    stream.Filter(func(s string) bool { return !strings.HasPrefix(s, "old") }),
//	    stream.Map(func(s string) (int, error) { return len(s), nil }),
//	)
//
// Delivery within one subscription is serialized: signals raised concurrently
// or reentrantly are queued and drained in arrival order, so an Observer never
// sees overlapping calls.
package stream
