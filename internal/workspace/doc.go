// Package workspace manages the temporary checkout directories used while
// aggregating branch sources.
//
// Every directory handed out by Acquire is a scoped resource: callers defer
// Release, which removes the directory whether or not processing succeeded.
package workspace
