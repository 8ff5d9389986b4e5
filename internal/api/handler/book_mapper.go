package handler

import (
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

func toBookResponse(b *domain.Book) bookResponse {
	resp := bookResponse{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Category:     b.Category,
		Available:    b.Available,
		Type:         string(b.Type),
		AccessMethod: b.AccessMethod(),
	}

	switch {
	case b.Digital != nil:
		resp.FileFormat = b.Digital.FileFormat
		resp.FileSizeMB = b.Digital.FileSizeMB
	case b.Audio != nil:
		resp.Narrator = b.Audio.Narrator
		resp.DurationMinutes = b.Audio.DurationMinutes
		resp.AudioFormat = b.Audio.AudioFormat
	case b.EBook != nil:
		resp.Interactive = b.EBook.Interactive
		resp.PageCount = b.EBook.PageCount
		resp.Publisher = b.EBook.Publisher
	}

	return resp
}

func toBookListResponse(books []*domain.Book) bookListResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return bookListResponse{Books: out, Total: len(out)}
}

func toCreateBookInput(req createBookRequest) ports.CreateBookInput {
	return ports.CreateBookInput{
		Type:     req.Type,
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Category: req.Category,

		FileFormat: req.FileFormat,
		FileSizeMB: req.FileSizeMB,

		Narrator:        req.Narrator,
		DurationMinutes: req.DurationMinutes,
		AudioFormat:     req.AudioFormat,

		Interactive: req.Interactive,
		PageCount:   req.PageCount,
		Publisher:   req.Publisher,
	}
}
