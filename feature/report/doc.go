// Package report assembles the final reconciliation report and writes it as
// JSON. It consumes the parse and reconciliation value types verbatim and adds
// run metadata, per-snapshot summaries, and flattened data-quality issue
// sections so a single document explains both the diff and every compromise
// made while producing it.
package report
