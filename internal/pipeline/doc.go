// Package pipeline runs the base stats generation: load the six source
// tables, derive the constants, render the Go file, then write or check it.
package pipeline
