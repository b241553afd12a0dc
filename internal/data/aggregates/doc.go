// Package aggregates contains infrastructure implementations of domain aggregate contracts.
//
// Implementations in this package compose table-level repos from internal/data/repos
// and own the transaction boundary of every write. A write either commits all
// of its rows or none of them.
package aggregates
