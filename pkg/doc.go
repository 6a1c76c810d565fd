// Package pkg provides the core libraries for mergeviz.
//
// # Overview
//
// Mergeviz animates an in-place merge sort over an array that lives in
// manually managed memory. The pkg directory is organized leaf-first:
//
//  1. [mem] - Layout engine: size and alignment of a value type, and the
//     only caller of the native allocators.
//  2. [varray] - Fixed-length, bounds-checked container on top of [mem].
//  3. [mergesort] - Rotation-based merge sort that reports every swap.
//  4. [viz] - Histogram rendering, pacing and the randomize/sort sequence.
//
// Supporting packages:
//
//   - [errors] - Coded errors and validation of user input.
//   - [fault] - Process-fatal invariant violations.
//   - [observability] - Hooks for logging and metrics.
//   - [buildinfo] - Version information set at build time.
//
// # Architecture
//
// Data flows one way:
//
//	viz.Driver
//	    ↓ owns
//	varray.Array ── mem.Layout ── mem.Allocator (heap | mmap)
//	    ↑ mutated by
//	viz.Randomize, mergesort.Sorter
//	    ↓ after every swap
//	viz.Sink (Renderer | Recorder)
//
// [mem]: github.com/matzehuels/mergeviz/pkg/mem
// [varray]: github.com/matzehuels/mergeviz/pkg/varray
// [mergesort]: github.com/matzehuels/mergeviz/pkg/mergesort
// [viz]: github.com/matzehuels/mergeviz/pkg/viz
// [errors]: github.com/matzehuels/mergeviz/pkg/errors
// [fault]: github.com/matzehuels/mergeviz/pkg/fault
// [observability]: github.com/matzehuels/mergeviz/pkg/observability
// [buildinfo]: github.com/matzehuels/mergeviz/pkg/buildinfo
package pkg
