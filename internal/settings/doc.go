// Package settings is the key-value persistence layer behind the category,
// history and preference stores. Each key holds one opaque blob.
//
// Backends:
//   - SQLiteRepository: the metadata table of the local database (default)
//   - PostgresRepository: the same table on a Postgres server
//   - FileRepository: one file per key in a directory, with change watching
//   - S3Repository: one object per key under a bucket prefix
//   - MemoryRepository: a process-local map
package settings
