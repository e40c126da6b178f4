// Package manifest reads and writes stencils.yaml, the list of stencil
// functions the generated dispatchers call. The kernel generator consumes it
// to know which callees it has to provide.
package manifest
