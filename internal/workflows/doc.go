// Package workflows contains multi-step operations shared by CLI commands,
// kept separate from cmd so they can be tested without cobra plumbing.
package workflows
