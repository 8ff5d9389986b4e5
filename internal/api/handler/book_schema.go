package handler

// createBookRequest is the admin payload for adding a book to the catalog.
// Variant fields not matching book_type are ignored; omitted ones fall back
// to the catalog defaults.
type createBookRequest struct {
	Type     string `json:"book_type" validate:"required,oneof=DIGITAL AUDIO EBOOK"`
	Title    string `json:"title"     validate:"required"`
	Author   string `json:"author"    validate:"required"`
	ISBN     string `json:"isbn"      validate:"required"`
	Category string `json:"category"  validate:"required"`

	FileFormat string  `json:"file_format,omitempty"`
	FileSizeMB float64 `json:"file_size_mb,omitempty"`

	Narrator        string `json:"narrator,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	AudioFormat     string `json:"audio_format,omitempty"`

	Interactive bool   `json:"interactive,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
}

// bookResponse flattens the book envelope and its variant into one object,
// plus the derived access_method string.
type bookResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ISBN         string `json:"isbn"`
	Category     string `json:"category"`
	Available    bool   `json:"available"`
	Type         string `json:"book_type"`
	AccessMethod string `json:"access_method"`

	FileFormat string  `json:"file_format,omitempty"`
	FileSizeMB float64 `json:"file_size_mb,omitempty"`

	Narrator        string `json:"narrator,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	AudioFormat     string `json:"audio_format,omitempty"`

	Interactive bool   `json:"interactive,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
}

type bookListResponse struct {
	Books []bookResponse `json:"books"`
	Total int            `json:"total"`
}

type statsResponse struct {
	Books       int `json:"books"`
	Loans       int `json:"loans"`
	ActiveLoans int `json:"active_loans"`
}
