// Package git discovers documentation branches in a base repository and fetches
// each one as a shallow, single-branch checkout.
//
// Clone failures are classified into foundation ClassifiedErrors. Network class
// failures are retried according to a retry.Policy; everything else fails fast.
package git
