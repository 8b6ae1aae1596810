// Package testinfra starts PostgreSQL containers for catalog integration
// tests.
package testinfra
