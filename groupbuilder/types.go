package groupbuilder

// Outcome is the result of one Build call.
type Outcome struct {
	// Accepted is true when the built group met min_group_size.
	Accepted bool
	// Members holds the accepted group's record indices in extension
	// order (seed first). Empty when Accepted is false.
	Members []int
	// Score is the final group score, valid only when Accepted.
	Score float64
	// Exhausted reports that the pool yielded no feasible group at all
	// for this seed.
	Exhausted bool
}
