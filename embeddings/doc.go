// Package embeddings provides vectorized scalar functions over embedding
// columns. ArrayDistance computes the Euclidean distance between two
// fixed-size float32 list columns (or a fixed-size column and a float64 list
// literal), one result per row, with float32 accumulation via the SIMD
// kernels in github.com/viant/vec.
package embeddings
