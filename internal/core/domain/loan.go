package domain

import (
	"errors"
	"time"
)

// LoanPeriodDays is the fixed loan policy: due date = loan date + 14 days.
const LoanPeriodDays = 14

var ErrLoanNotFound = errors.New("loan not found")
var ErrLoanAlreadyReturned = errors.New("loan already returned")
var ErrPersistenceFailed = errors.New("persistence failed")

// Loan records one book borrowed by one user. A loan is open until marked
// returned; returned is terminal and ReturnDate stays nil until then.
type Loan struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Returned   bool       `json:"returned"`
}

// NewLoan opens a loan starting now with the fixed 14-day due date.
// The ID is left at the sentinel zero value for the catalog to assign.
func NewLoan(username string, bookID int64, bookTitle string, now time.Time) *Loan {
	return &Loan{
		Username:  username,
		BookID:    bookID,
		BookTitle: bookTitle,
		LoanDate:  now,
		DueDate:   now.AddDate(0, 0, LoanPeriodDays),
	}
}

// MarkReturned closes the loan and stamps the return date.
func (l *Loan) MarkReturned(now time.Time) {
	l.Returned = true
	l.ReturnDate = &now
}

// IsOverdue reports whether the loan is open past its due date. Overdue is a
// derived predicate, not a state transition.
func (l *Loan) IsOverdue(now time.Time) bool {
	if l.Returned {
		return false
	}
	return now.After(l.DueDate)
}

// DaysUntilDue returns whole days until the due date, negative when overdue.
func (l *Loan) DaysUntilDue(now time.Time) int {
	return int(l.DueDate.Sub(now).Hours() / 24)
}

// Clone returns a copy so callers cannot mutate registry state.
func (l *Loan) Clone() *Loan {
	clone := *l
	if l.ReturnDate != nil {
		rd := *l.ReturnDate
		clone.ReturnDate = &rd
	}
	return &clone
}
