// Package tokenizer splits a line typed at the gitlet prompt into an
// argument vector.
//
// Splitting is whitespace-based with single- and double-quote spans that
// keep embedded whitespace. An unterminated quote is closed implicitly at
// end of line rather than reported as an error.
package tokenizer
