// Package extract turns a fetched calendar page into raw candidate rows.
//
// The source's markup is not contractually stable, so extraction runs an
// ordered chain of strategies: a structured pass over the calendar table's
// cells, then a loose pass that pattern-matches flattened block text. Both
// passes date rows with a running day cursor advanced only by explicit
// day-header text ("Monday August 18"); rows seen before any header carry no
// date and are discarded. The first strategy yielding rows wins.
package extract
