package service

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// Catalog owns the in-memory book and loan collections. A single mutex
// guards both, and the compound borrow/return operations hold it for the
// full read-modify-write so availability checks cannot race loan creation.
type Catalog struct {
	mu         sync.Mutex
	books      []*domain.Book
	loans      []*domain.Loan
	nextBookID int64
	nextLoanID int64
	log        zerolog.Logger
}

func NewCatalog(log zerolog.Logger) *Catalog {
	return &Catalog{
		nextBookID: 1,
		nextLoanID: 1,
		log:        log,
	}
}

// AddBook inserts a book. A sentinel zero ID takes the next counter value;
// an explicit ID is accepted as-is and advances the counter past it.
// Explicit duplicate IDs are accepted without complaint.
func (c *Catalog) AddBook(b *domain.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b.ID == 0 {
		b.ID = c.nextBookID
		c.nextBookID++
	} else if b.ID >= c.nextBookID {
		c.nextBookID = b.ID + 1
	}
	c.books = append(c.books, b)

	c.log.Debug().Int64("book_id", b.ID).Str("title", b.Title).Msg("book added to catalog")
}

// AllBooks returns a deep copy of the catalog.
func (c *Catalog) AllBooks() []*domain.Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Book, len(c.books))
	for i, b := range c.books {
		out[i] = b.Clone()
	}
	return out
}

// BookByID returns a copy of the book with the given ID.
func (c *Catalog) BookByID(id int64) (*domain.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.findBook(id)
	if b == nil {
		return nil, false
	}
	return b.Clone(), true
}

// SearchByTitle returns books whose title contains the term,
// case-insensitively. Substring match only, no fuzzy matching.
func (c *Catalog) SearchByTitle(term string) []*domain.Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	needle := strings.ToLower(term)
	var out []*domain.Book
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// BooksByCategory returns books whose category equals the given one,
// ignoring case.
func (c *Catalog) BooksByCategory(category string) []*domain.Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*domain.Book
	for _, b := range c.books {
		if strings.EqualFold(b.Category, category) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// AddLoan inserts a loan using the same ID rule as AddBook.
func (c *Catalog) AddLoan(l *domain.Loan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addLoanLocked(l)
}

func (c *Catalog) addLoanLocked(l *domain.Loan) {
	if l.ID == 0 {
		l.ID = c.nextLoanID
		c.nextLoanID++
	} else if l.ID >= c.nextLoanID {
		c.nextLoanID = l.ID + 1
	}
	c.loans = append(c.loans, l)

	c.log.Debug().Int64("loan_id", l.ID).Str("username", l.Username).Msg("loan registered")
}

// AllLoans returns a copy of the loan registry.
func (c *Catalog) AllLoans() []*domain.Loan {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Loan, len(c.loans))
	for i, l := range c.loans {
		out[i] = l.Clone()
	}
	return out
}

// LoansByUser returns the loans held by username, open and closed.
func (c *Catalog) LoansByUser(username string) []*domain.Loan {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*domain.Loan
	for _, l := range c.loans {
		if l.Username == username {
			out = append(out, l.Clone())
		}
	}
	return out
}

// LoanByID returns a copy of the loan with the given ID.
func (c *Catalog) LoanByID(id int64) (*domain.Loan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := c.findLoan(id)
	if l == nil {
		return nil, false
	}
	return l.Clone(), true
}

// Checkout opens a loan for bookID on behalf of username: availability
// check, loan creation and availability flip happen under one lock.
// Returns domain.ErrBookNotFound or domain.ErrBookUnavailable; on failure
// no loan is created and no state changes.
func (c *Catalog) Checkout(username string, bookID int64, now time.Time) (*domain.Loan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	book := c.findBook(bookID)
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if !book.Available {
		return nil, domain.ErrBookUnavailable
	}

	loan := domain.NewLoan(username, bookID, book.Title, now)
	c.addLoanLocked(loan)
	book.Available = false

	c.log.Info().
		Int64("loan_id", loan.ID).
		Int64("book_id", bookID).
		Str("username", username).
		Msg("book checked out")

	return loan.Clone(), nil
}

// Return closes the loan and restores the book's availability, atomically.
// A loan whose book no longer exists is tolerated: the loan still closes.
// Returns domain.ErrLoanNotFound or domain.ErrLoanAlreadyReturned; a failed
// return leaves no side effects.
func (c *Catalog) Return(loanID int64, now time.Time) (*domain.Loan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loan := c.findLoan(loanID)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.Returned {
		return nil, domain.ErrLoanAlreadyReturned
	}

	if book := c.findBook(loan.BookID); book != nil {
		book.Available = true
	}
	loan.MarkReturned(now)

	c.log.Info().
		Int64("loan_id", loan.ID).
		Str("username", loan.Username).
		Msg("book returned")

	return loan.Clone(), nil
}

// Statistics returns the book count, loan count and open-loan count.
func (c *Catalog) Statistics() (books, loans, active int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.loans {
		if !l.Returned {
			active++
		}
	}
	return len(c.books), len(c.loans), active
}

// Reset drops all books and loans and rewinds the counters. Test helper.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.books = nil
	c.loans = nil
	c.nextBookID = 1
	c.nextLoanID = 1
}

func (c *Catalog) findBook(id int64) *domain.Book {
	for _, b := range c.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (c *Catalog) findLoan(id int64) *domain.Loan {
	for _, l := range c.loans {
		if l.ID == id {
			return l
		}
	}
	return nil
}
