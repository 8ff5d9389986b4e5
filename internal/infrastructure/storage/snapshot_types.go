package storage

import (
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// File-level record types. Books serialize flat with a bookType
// discriminator and the variant fields at top level, so the on-disk layout
// stays independent of the domain's tagged-union shape.

type userRecord struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FullName     string `json:"fullName"`
}

type bookRecord struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
	BookType  string `json:"bookType"`

	FileFormat string  `json:"fileFormat,omitempty"`
	FileSizeMB float64 `json:"fileSizeMB,omitempty"`

	Narrator        string `json:"narrator,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	AudioFormat     string `json:"audioFormat,omitempty"`

	Interactive bool   `json:"hasInteractiveContent,omitempty"`
	PageCount   int    `json:"pageCount,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
}

type loanRecord struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	BookID     int64      `json:"bookId"`
	BookTitle  string     `json:"bookTitle"`
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Returned   bool       `json:"returned"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		Role:         u.Role,
		FullName:     u.FullName,
	}
}

func fromUserRecord(r userRecord) *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Email:        r.Email,
		Role:         r.Role,
		FullName:     r.FullName,
	}
}

func toBookRecord(b *domain.Book) bookRecord {
	r := bookRecord{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Category:  b.Category,
		Available: b.Available,
		BookType:  string(b.Type),
	}
	switch {
	case b.Digital != nil:
		r.FileFormat = b.Digital.FileFormat
		r.FileSizeMB = b.Digital.FileSizeMB
	case b.Audio != nil:
		r.Narrator = b.Audio.Narrator
		r.DurationMinutes = b.Audio.DurationMinutes
		r.AudioFormat = b.Audio.AudioFormat
	case b.EBook != nil:
		r.Interactive = b.EBook.Interactive
		r.PageCount = b.EBook.PageCount
		r.Publisher = b.EBook.Publisher
	}
	return r
}

func fromBookRecord(r bookRecord) (*domain.Book, error) {
	book, err := domain.NewBook(domain.BookType(r.BookType), domain.BookSpec{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		FileFormat:      r.FileFormat,
		FileSizeMB:      r.FileSizeMB,
		Narrator:        r.Narrator,
		DurationMinutes: r.DurationMinutes,
		AudioFormat:     r.AudioFormat,
		Interactive:     r.Interactive,
		PageCount:       r.PageCount,
		Publisher:       r.Publisher,
	})
	if err != nil {
		return nil, err
	}
	book.ID = r.ID
	book.Available = r.Available
	return book, nil
}

func toLoanRecord(l *domain.Loan) loanRecord {
	return loanRecord{
		ID:         l.ID,
		Username:   l.Username,
		BookID:     l.BookID,
		BookTitle:  l.BookTitle,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Returned:   l.Returned,
	}
}

func fromLoanRecord(r loanRecord) *domain.Loan {
	return &domain.Loan{
		ID:         r.ID,
		Username:   r.Username,
		BookID:     r.BookID,
		BookTitle:  r.BookTitle,
		LoanDate:   r.LoanDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Returned:   r.Returned,
	}
}
