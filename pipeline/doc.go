// Package pipeline provides lazy, pull-based stages for processing segments.
//
// No work happens until values are pulled via Collect or ForEach. Each stage
// pulls from the previous one on demand, so a slow consumer throttles the
// workers behind it.
//
// # Stages
//
//   - Map: transform each value in order
//   - Tap: observe each value without altering it (progress, metrics)
//   - Parallel: transform values on a worker pool, order NOT preserved;
//     the first error cancels the remaining workers
//
// # Usage
//
//	jobs := pipeline.Map(pipeline.FromSlice(segments), toJob)
//	done := pipeline.Parallel(jobs, workers, processor.Process)
//	results, err := pipeline.Collect(ctx, pipeline.Tap(done, progress))
package pipeline
