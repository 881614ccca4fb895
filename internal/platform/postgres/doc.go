// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. Destinations keep their activities
// in a JSONB column; schema changes live in the migrations subpackage.
package postgres
