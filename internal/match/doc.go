// Package match provides identifier normalization, Levenshtein distance and
// "did you mean" ranking for registry keys.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Camel: turns a key into the CamelCase part of a Go identifier
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known keys against a misspelled one
package match
