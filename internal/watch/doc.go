// Package watch reruns generation when the table source or the config file
// changes on disk.
package watch
