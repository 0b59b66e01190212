// Package scheduler provides the single-worker interval used to rescan the page.
package scheduler
