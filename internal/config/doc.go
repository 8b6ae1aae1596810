// Package config loads bookxmp.yaml, the optional .env file next to it and
// BOOKXMP_* environment overrides.
//
//	library: ./sheets
//	language: en
//	catalog:
//	  dsn: postgres://bookxmp@localhost:5432/catalog
//	  connect_timeout: 5s
//	  retry_attempts: 3
package config
