// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry meaning (Success, Error, Path, Code) rather than raw
// colors, and degrade to plain-text markers when color is disabled via
// NO_COLOR or terminal detection.
package ui
