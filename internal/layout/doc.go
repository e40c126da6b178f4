// Package layout describes the fixed shape of the generated code: which
// field kinds exist, which directions each supports, and the four operator
// families with their plain and staggered method tables.
//
// Generators iterate this catalogue instead of branching per combination.
package layout
