// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts here carry no persistence or transport detail. Each one marks a
// write boundary whose records must change together or not at all.
package aggregates
