// Package ingest provides a bulk-import pipeline for mapping records.
//
// The Pipeline type reads rows from an import source, validates them,
// skips rows whose content fingerprint is already stored, and inserts the
// rest in batches. A checkpoint is saved after every batch so an
// interrupted import resumes where it left off.
//
// Fingerprint and duplicate lookups run concurrently on a worker pool;
// transient storage errors are retried with exponential backoff.
package ingest
