package domain

// FeeFilter identifies the academic scope a fee amount or a discount applies
// to. All lookups into the fee catalog and the discount table are keyed by it.
type FeeFilter struct {
	Class       string `json:"class"`
	Group       string `json:"group"`
	Section     string `json:"section"`
	Session     string `json:"session"`
	FeeTypeName string `json:"fee_type_name"`
}

// FeeType is a priced obligation (tuition, exam fee, ...) scoped to a
// class/group/section/session. Read-only to the ledger; staff maintain it.
type FeeType struct {
	ID              int32   `json:"id"`
	Class           string  `json:"class"`
	Group           string  `json:"group"`
	Section         string  `json:"section"`
	Session         string  `json:"session"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	LastPayableDate *string `json:"last_payable_date,omitempty"`
	CreatedOn       string  `json:"created_on"`
}

// Filter returns the composite key identifying this fee type.
func (ft *FeeType) Filter() FeeFilter {
	return FeeFilter{
		Class:       ft.Class,
		Group:       ft.Group,
		Section:     ft.Section,
		Session:     ft.Session,
		FeeTypeName: ft.Name,
	}
}

// FeeLabel is a user-creatable fee-type name in the catalog.
type FeeLabel struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	CreatedOn string `json:"created_on"`
}
