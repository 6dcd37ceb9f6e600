package domain

import "strings"

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCheque PaymentMethod = "CHEQUE"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodMobile PaymentMethod = "MOBILE_BANKING"
)

// Collection is one recorded payment transaction against one or more fee
// types for one student. Serial is assigned by the store, unique and
// append-only increasing. Historical records are mutated in place only to
// zero out settled dues.
type Collection struct {
	Serial        int32         `json:"serial"`
	ReceiptRef    string        `json:"receipt_ref"`
	StudentID     int32         `json:"student_id"`
	StudentName   string        `json:"student_name"`
	Class         string        `json:"class"`
	Group         string        `json:"group"`
	Section       string        `json:"section"`
	Session       string        `json:"session"`
	FeeTypes      []string      `json:"fee_types"`
	TotalPayable  float64       `json:"total_payable"`
	PaidAmount    float64       `json:"paid_amount"`
	PayableDue    float64       `json:"payable_due"`
	TotalDue      float64       `json:"total_due"`
	OverdueAmount float64       `json:"overdue_amount"`
	PayDate       string        `json:"pay_date"` // yyyy-mm-dd
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedOn     string        `json:"created_on"`
}

// Outstanding reports whether the record still carries an unpaid balance.
func (c *Collection) Outstanding() bool {
	return c.TotalDue > 0
}

// FeeTypesLabel renders the fee-type list for receipts and tables.
func (c *Collection) FeeTypesLabel() string {
	return strings.Join(c.FeeTypes, ", ")
}

// Filter returns the academic scope of the transaction.
func (c *Collection) Filter() FeeFilter {
	return FeeFilter{
		Class:   c.Class,
		Group:   c.Group,
		Section: c.Section,
		Session: c.Session,
	}
}

// CollectionPatch is a direct field patch applied when staff edit an existing
// record. Nil fields are left unchanged. Editing never reruns settlement.
type CollectionPatch struct {
	TotalPayable  *float64       `json:"total_payable,omitempty"`
	PaidAmount    *float64       `json:"paid_amount,omitempty"`
	TotalDue      *float64       `json:"total_due,omitempty"`
	PayDate       *string        `json:"pay_date,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	FeeTypes      []string       `json:"fee_types,omitempty"`
}
