/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package psql provides small helpers for database/sql.
//
//   - [TrimSql] trims SQL statements in Go raw string literals, multi-line strings enclosed by
//     the back-tick ‘`’ character
//   - [ColumnType] describes columns of a result-set
//   - convenience function for single-value queries: [QueryString] on a [Preparer]
//   - scanning a single-row result into a value: [ScanToInt] [ScanToString]
package psql
