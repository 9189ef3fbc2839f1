// Package pipeline provides a framework for executing image processing
// steps in sequence.
//
// Each image moves through four stages: capture date extraction, decoding,
// stamping, and encoding. Each stage is implemented as a Step that receives
// the current Job and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running batch runs
//
// The Processor runs one pipeline per candidate file in a directory, with
// concurrency control using errgroup.
package pipeline
