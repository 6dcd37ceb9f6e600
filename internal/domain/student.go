package domain

// Student is the slice of the student record the ledger owns: identity,
// academic scope and the derived FeesDue aggregate. FeesDue is always
// recomputable by summing TotalDue over the student's collections.
type Student struct {
	ID      int32   `json:"id"`
	Name    string  `json:"name"`
	Class   string  `json:"class"`
	Group   string  `json:"group"`
	Section string  `json:"section"`
	Session string  `json:"session"`
	Email   string  `json:"email,omitempty"`
	FeesDue float64 `json:"fees_due"`
}
