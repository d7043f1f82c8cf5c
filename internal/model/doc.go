// Package model defines the domain types shared between the CLI layer
// and the scan engine: the validated scan request, the final report,
// and the exit-code-carrying error type used by the command surface.
package model
