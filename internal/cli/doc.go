// Package cli holds the deriv-generator commands.
package cli
