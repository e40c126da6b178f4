package gen

import "fmt"

//go:generate go tool stringer -type=Branch -linecomment -output=branch_string.go

// Branch tags which grid alignment a stencil handles.
type Branch int

const (
	BranchNorm Branch = iota // norm
	BranchOn                 // on
	BranchOff                // off

	// BranchTotal is the number of branches defined
	BranchTotal = int(iota)
)

// branchesFor returns the stencil variants a dispatcher calls.
func branchesFor(staggered bool) []Branch {
	if staggered {
		return []Branch{BranchOn, BranchOff}
	}

	return []Branch{BranchNorm}
}

// ParseBranch is the inverse of Branch.String.
func ParseBranch(s string) (Branch, error) {
	for b := Branch(0); int(b) < BranchTotal; b++ {
		if b.String() == s {
			return b, nil
		}
	}

	return 0, fmt.Errorf("unknown branch %q", s)
}
