/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package sqliter provides a data source and data conversion for SQLite3.
//
//   - [NewDataSource] returns a [DataSource]
//
// conversions for:
//   - — Go time.Time to SQLite3 TEXT strict iso8601 UTC time-zone, nanosecond precision
//     [TimeToDB] [ToTime]
//   - — Go bool to SQLite3 INTEGER [BoolToDB] [ToBool]
//   - — Go time.Time to SQLite3’s DATETIME TEXT iso8601-like format millisecond precision
//     [TimeToDATETIME] [DATETIMEtoTime]
//   - — Go uuid.UUID to SQLite3 TEXT [UUIDToDB] [ToUUID]
//
// additionally:
//   - retrieval of pragma, ie. SQLite3 performance-related database configuration
//     [Pragma]
//   - retrieval of actionable SQLite3 error codes [Code]
package sqliter
