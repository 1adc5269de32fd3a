// Package matchers provides token-based fuzzy string matching used to
// map raw column headers onto canonical fields and to score candidate
// records against each other.
//
// Scores are integers in [0, 100]. Identical inputs always produce
// identical scores and ordering.
//
// # Import Rules
//
// This package depends only on the standard library. It must not
// import domain, services or adapters.
package matchers
