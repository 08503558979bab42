// Package aggregate runs one complete aggregation: acquire every project
// source, copy its documentation, compose the site, validate it and
// optionally build it with MkDocs.
//
// A run is a fixed sequence of stages threading a single State. Per-project
// problems are recorded on the State and never abort the run; only failures
// that leave no usable site (output not writable, discovery failing,
// cancellation) stop it.
package aggregate
