// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations report absence and
// uniqueness conflicts with the sentinels declared here.
package store
