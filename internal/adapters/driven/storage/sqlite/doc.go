// Package sqlite implements the history store on an embedded SQLite
// database. The schema is managed through embedded SQL migrations run
// at open time.
package sqlite
