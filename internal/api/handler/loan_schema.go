package handler

import "time"

type borrowRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

// loanResponse mirrors the loan record plus the derived overdue flag,
// computed against the server clock at render time.
type loanResponse struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Returned   bool       `json:"returned"`
	Overdue    bool       `json:"overdue"`
	// DaysUntilDue is negative once the loan is overdue. Omitted on
	// closed loans.
	DaysUntilDue *int `json:"days_until_due,omitempty"`
}

type loanListResponse struct {
	Loans []loanResponse `json:"loans"`
	Total int            `json:"total"`
}
