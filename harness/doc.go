// Package harness drives stream pipelines from recipes: finite input
// sequences, the operator chain to apply, and the expected output.
//
// A recipe book is a YAML file:
//
//	recipes:
//	  - name: only-fresh
//	    solution: merge-fresh
//	    inputs:
//	      - [apple, old-apple, apple]
//	      - [banana, old-banana]
//	    expected: [apple, apple, banana]
//
// Each input becomes a stream.From producer; the solution (a Build) turns
// the inputs into one output producer, whose values are shown on a Display
// and compared with the expectation.
//
//	recipes, err := harness.LoadRecipes("recipes.yml")
//	runner, err := harness.NewRunner(cfg, stream.Telemetry{})
//	results, err := runner.RunBook(ctx, recipes)
package harness
