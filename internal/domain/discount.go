package domain

type DiscountKind string

const (
	DiscountKindFixed      DiscountKind = "FIXED"
	DiscountKindPercentage DiscountKind = "PERCENTAGE"
)

// Discount is a time-bounded override of a fee type's payable amount for one
// student. RegularAmount is the base the discount was created against and is
// authoritative over the live catalog amount while the discount is active.
type Discount struct {
	ID             int32        `json:"id"`
	StudentName    string       `json:"student_name"`
	Class          string       `json:"class"`
	Group          string       `json:"group"`
	Section        string       `json:"section"`
	Session        string       `json:"session"`
	FeeTypeName    string       `json:"fee_type_name"`
	Kind           DiscountKind `json:"kind"`
	RegularAmount  float64      `json:"regular_amount"`
	DiscountAmount float64      `json:"discount_amount"`
	StartDate      string       `json:"start_date"` // yyyy-mm-dd
	EndDate        string       `json:"end_date"`   // yyyy-mm-dd
	CreatedOn      string       `json:"created_on"`
}

// ActiveOn reports whether the discount window contains day, both ends
// included. yyyy-mm-dd strings compare correctly as plain strings.
func (d *Discount) ActiveOn(day string) bool {
	return d.StartDate <= day && day <= d.EndDate
}

// Matches reports whether the discount targets the given student and scope.
func (d *Discount) Matches(studentName string, f FeeFilter) bool {
	return d.StudentName == studentName &&
		d.Class == f.Class &&
		d.Group == f.Group &&
		d.Section == f.Section &&
		d.Session == f.Session &&
		d.FeeTypeName == f.FeeTypeName
}
