// Package table reads the method tables that describe which differencing
// schemes exist for each derivative operator.
//
// The input is a C source fragment holding brace-initialized arrays such as
//
//	static DiffLookup FirstDerivTable[] = {
//	  {DIFF_C2, DDX_C2, NULL, NULL},
//	  ...
//	};
//
// Each array becomes a MethodTable mapping a method name to the three
// stencil references of its entry. The DiffNameTable array is kept apart as
// the DescriptionTable. Tables are immutable once Parse returns.
package table
