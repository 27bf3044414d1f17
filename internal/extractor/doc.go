// Package extractor parses race list markup into competitor records.
//
// Extraction runs an ordered list of strategies against the parsed document.
// Each strategy either locates a roster-shaped set of rows or reports no
// match; the first match wins. Layout drift never produces an error: a page
// the strategies do not understand simply yields fewer, emptier records, and
// every field that cannot be read falls back to a documented default.
package extractor
