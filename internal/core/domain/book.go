package domain

import "errors"

// BookType discriminates the catalog's book variants.
type BookType string

const (
	BookTypeDigital BookType = "DIGITAL"
	BookTypeAudio   BookType = "AUDIO"
	BookTypeEBook   BookType = "EBOOK"
)

var ErrBookNotFound = errors.New("book not found")
var ErrBookUnavailable = errors.New("book not available")
var ErrUnknownBookType = errors.New("unknown book type")

// Variant defaults applied when the caller leaves the fields unset.
const (
	DefaultFileFormat      = "PDF"
	DefaultFileSizeMB      = 10.0
	DefaultNarrator        = "Unknown"
	DefaultDurationMinutes = 300
	DefaultAudioFormat     = "MP3"
	DefaultPageCount       = 200
	DefaultPublisher       = "Unknown"
)

// DigitalBook holds the fields specific to downloadable books.
type DigitalBook struct {
	FileFormat string  `json:"file_format"`
	FileSizeMB float64 `json:"file_size_mb"`
}

// AudioBook holds the fields specific to narrated books.
type AudioBook struct {
	Narrator        string `json:"narrator"`
	DurationMinutes int    `json:"duration_minutes"`
	AudioFormat     string `json:"audio_format"`
}

// EBook holds the fields specific to e-reader books.
type EBook struct {
	Interactive bool   `json:"interactive"`
	PageCount   int    `json:"page_count"`
	Publisher   string `json:"publisher"`
}

// Book is the catalog entity: a common envelope plus exactly one variant,
// selected by Type. Exactly one of Digital, Audio, EBook is non-nil.
type Book struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	ISBN      string   `json:"isbn"`
	Category  string   `json:"category"`
	Available bool     `json:"available"`
	Type      BookType `json:"book_type"`

	Digital *DigitalBook `json:"digital,omitempty"`
	Audio   *AudioBook   `json:"audio,omitempty"`
	EBook   *EBook       `json:"ebook,omitempty"`
}

// BookSpec carries the fields accepted when building a book. Variant fields
// left at their zero value take the catalog defaults.
type BookSpec struct {
	Title    string
	Author   string
	ISBN     string
	Category string

	FileFormat string
	FileSizeMB float64

	Narrator        string
	DurationMinutes int
	AudioFormat     string

	Interactive bool
	PageCount   int
	Publisher   string
}

// NewBook builds a book of the given type. The ID is left at the sentinel
// zero value so the catalog assigns the next counter value on insert.
// New books start out available.
func NewBook(t BookType, spec BookSpec) (*Book, error) {
	b := &Book{
		Title:     spec.Title,
		Author:    spec.Author,
		ISBN:      spec.ISBN,
		Category:  spec.Category,
		Available: true,
		Type:      t,
	}

	switch t {
	case BookTypeDigital:
		b.Digital = &DigitalBook{
			FileFormat: orDefault(spec.FileFormat, DefaultFileFormat),
			FileSizeMB: spec.FileSizeMB,
		}
		if b.Digital.FileSizeMB == 0 {
			b.Digital.FileSizeMB = DefaultFileSizeMB
		}
	case BookTypeAudio:
		b.Audio = &AudioBook{
			Narrator:        orDefault(spec.Narrator, DefaultNarrator),
			DurationMinutes: spec.DurationMinutes,
			AudioFormat:     orDefault(spec.AudioFormat, DefaultAudioFormat),
		}
		if b.Audio.DurationMinutes == 0 {
			b.Audio.DurationMinutes = DefaultDurationMinutes
		}
	case BookTypeEBook:
		b.EBook = &EBook{
			Interactive: spec.Interactive,
			PageCount:   spec.PageCount,
			Publisher:   orDefault(spec.Publisher, DefaultPublisher),
		}
		if b.EBook.PageCount == 0 {
			b.EBook.PageCount = DefaultPageCount
		}
	default:
		return nil, ErrUnknownBookType
	}

	return b, nil
}

// AccessMethod describes how a reader consumes this book variant.
func (b *Book) AccessMethod() string {
	switch b.Type {
	case BookTypeDigital:
		return "direct download in " + b.Digital.FileFormat + " format"
	case BookTypeAudio:
		return "streaming audio in " + b.Audio.AudioFormat + ", narrated by " + b.Audio.Narrator
	case BookTypeEBook:
		return "e-reader access via " + b.EBook.Publisher
	}
	return ""
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (b *Book) Clone() *Book {
	clone := *b
	if b.Digital != nil {
		d := *b.Digital
		clone.Digital = &d
	}
	if b.Audio != nil {
		a := *b.Audio
		clone.Audio = &a
	}
	if b.EBook != nil {
		e := *b.EBook
		clone.EBook = &e
	}
	return &clone
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
