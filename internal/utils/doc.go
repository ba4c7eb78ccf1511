// Package utils provides terminal helpers shared by CLI commands, chiefly
// no-echo password prompting via golang.org/x/term.
package utils
