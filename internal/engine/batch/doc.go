// Package batch splits a slice of work items into fixed-size batches and runs
// a callback per batch, either sequentially or on a bounded set of goroutines.
//
// Callbacks receive the offset of their batch within the input slice, so a
// caller can write per-item outputs into a pre-sized slice and keep input order
// without any locking. Progress is reported after every finished batch.
package batch
