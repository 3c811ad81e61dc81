// Package progress reports batch download progress on the terminal.
//
// A Reporter tracks how many charts are completed, failed and in flight via
// atomic counters fed by the workers, and a background ticker redraws a
// single status line until Stop is called.
package progress
