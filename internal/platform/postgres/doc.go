// Package postgres implements the store interfaces on a PostgreSQL
// database accessed through database/sql with the pgx driver. Driver
// errors are translated into the typed store errors by MapError.
package postgres
