// Package task manages background analysis execution: queuing, the
// bounded worker pool, and task lifecycle bookkeeping. It guarantees
// that submitting never blocks on worker availability and that every
// submitted task ends in exactly one terminal state, even when the
// computation panics.
package task
