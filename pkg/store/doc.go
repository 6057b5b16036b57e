// Package store defines the storage contract of persload.
//
// The loader only talks to storage through Store, so the reconciliation
// engine stays the same for PostgreSQL, SQLite and MySQL.
package store
