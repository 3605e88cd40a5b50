// Package config defines the settings for a reconciliation run and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type carries the schema contract (logical field to physical
// column name for both input feeds), the timestamp layout, the output
// timezone offset and the alarm-text match strictness. Environment
// variables (optionally via a .env file) override the YAML values.
package config
