package storage

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// Default seed data used when a collection file cannot be read. Matches the
// shipped demo accounts; passwords are hashed at seed time.

func defaultUsers() []*domain.User {
	return []*domain.User{
		{ID: 1, Username: "admin", PasswordHash: mustHash("admin123"), Email: "admin@biblioteca.com", Role: domain.RoleAdmin, FullName: "Administrator"},
		{ID: 2, Username: "john", PasswordHash: mustHash("user123"), Email: "john@email.com", Role: domain.RoleMember, FullName: "John Doe"},
		{ID: 3, Username: "guest", PasswordHash: mustHash("guest"), Email: "guest@email.com", Role: domain.RoleGuest, FullName: "Guest User"},
	}
}

func defaultBooks() []*domain.Book {
	digital, _ := domain.NewBook(domain.BookTypeDigital, domain.BookSpec{
		Title:      "Clean Code",
		Author:     "Robert C. Martin",
		ISBN:       "978-0132350884",
		Category:   "Programming",
		FileFormat: "PDF",
		FileSizeMB: 15.5,
	})
	digital.ID = 1

	audio, _ := domain.NewBook(domain.BookTypeAudio, domain.BookSpec{
		Title:           "El Quijote",
		Author:          "Miguel de Cervantes",
		ISBN:            "978-8424116377",
		Category:        "Classics",
		Narrator:        "Jorge Pupo",
		DurationMinutes: 2160,
	})
	audio.ID = 2

	ebook, _ := domain.NewBook(domain.BookTypeEBook, domain.BookSpec{
		Title:     "The Pragmatic Programmer",
		Author:    "Andrew Hunt",
		ISBN:      "978-0201616224",
		Category:  "Programming",
		PageCount: 352,
		Publisher: "Addison-Wesley",
	})
	ebook.ID = 3

	return []*domain.Book{digital, audio, ebook}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
