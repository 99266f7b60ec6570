// Package store defines interfaces for task state storage.
// These interfaces abstract the underlying storage mechanism from
// the application's core logic, allowing the task lifecycle rules to
// remain independent of how records are actually held.
package store