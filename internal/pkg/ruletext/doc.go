// Package ruletext holds the text primitives shared by every matcher:
// number words, keyword search, pipe-table detection, source citations,
// dice formulas and name normalization.
//
// Everything here is a pure function of its input. Nothing returns an
// error for text that simply does not contain what was asked for.
package ruletext
