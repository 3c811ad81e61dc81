// Package batch turns an input list or table into tasks and runs them over
// a fixed-size worker pool.
//
// Two input formats are understood: a plain list with one object name per
// line, and a delimited coordinate table whose header names are matched by
// prefix (ra*, dec*, size*, and an obj*/name*/source*/target* identifier
// column). Input validation happens before anything is dispatched, so a
// malformed table never produces a partial run.
//
// Each task is handled end to end by a single worker: resolve the name when
// no explicit coordinates were given, compute the pixel scale, fetch the
// chart. Workers share nothing. A task failure is recorded and the pool
// keeps going; all failures are surfaced together once the pool drains.
package batch
