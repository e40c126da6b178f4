// Package main provides the CLI entrypoint for deriv-generator.
//
// deriv-generator turns the method tables of the derivative operators into
// C++ code:
//   - dispatchers switching over the methods of each table
//   - public entry points choosing the staggered or plain dispatcher
//   - the option initializer picking each operator's default method
//   - stencils.yaml, the stencil functions the kernel generator must provide
package main

import "deriv-generator/internal/cli"

func main() {
	cli.Execute()
}
