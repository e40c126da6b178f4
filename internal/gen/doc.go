// Package gen emits the C++ dispatch code for the derivative operators.
//
// From a parsed table model and the layout catalogue it produces three
// fragments:
//   - the header declarations of the public entry points
//   - the implementation: per-table dispatchers, then the entry points
//     that choose between the staggered and non-staggered dispatcher
//   - the initializer resolving configured scheme names to default methods
//
// Every stencil call emitted is recorded as a GeneratedFunctionSpec so the
// stencil kernel generator knows which functions it must provide.
//
// Generation approach uses text/template over precomputed view data.
package gen
