// Package cli wires the scrape pipeline and the calendar encoder into the
// ffcal command.
//
// Exit codes are part of the contract with the publishing automation:
// ExitEmpty (2) tells it the run produced nothing publishable, distinctly
// from an ordinary failure.
package cli
