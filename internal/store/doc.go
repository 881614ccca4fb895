// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations live in internal/platform
// (postgres, mongo) and internal/store/memstore.
package store
