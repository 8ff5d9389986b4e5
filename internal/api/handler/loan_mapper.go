package handler

import (
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

func toLoanResponse(l *domain.Loan, now time.Time) loanResponse {
	var daysUntilDue *int
	if !l.Returned {
		d := l.DaysUntilDue(now)
		daysUntilDue = &d
	}
	return loanResponse{
		ID:         l.ID,
		Username:   l.Username,
		BookID:     l.BookID,
		BookTitle:  l.BookTitle,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Returned:     l.Returned,
		Overdue:      l.IsOverdue(now),
		DaysUntilDue: daysUntilDue,
	}
}

func toLoanListResponse(loans []*domain.Loan, now time.Time) loanListResponse {
	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l, now))
	}
	return loanListResponse{Loans: out, Total: len(out)}
}
