// Package ingest reads CSV record files and produces typed leg and
// account records. Records are validated before they reach the registry;
// malformed lines are logged and skipped, never fatal.
package ingest
