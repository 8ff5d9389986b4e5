package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/api/metrics"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type BookHandler struct {
	library ports.LibraryService
}

func NewBookHandler(library ports.LibraryService) *BookHandler {
	return &BookHandler{library: library}
}

// List returns the full catalog.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	books, err := h.library.Catalog(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookListResponse(books))
}

// Get returns a single book by its numeric ID.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	book, err := h.library.BookByID(c.Request().Context(), token, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Search finds books whose title contains the query term.
//
// @Summary      Search books by title
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Title substring, case-insensitive"
// @Success      200  {object}  bookListResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	books, err := h.library.Search(c.Request().Context(), token, term)
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()
	return c.JSON(http.StatusOK, toBookListResponse(books))
}

// ByCategory lists all books in a category.
//
// @Summary      List books by category
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        category  path      string  true  "Category name, case-insensitive"
// @Success      200       {object}  bookListResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/books/category/{category} [get]
func (h *BookHandler) ByCategory(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	books, err := h.library.BooksByCategory(c.Request().Context(), token, c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookListResponse(books))
}

// Create adds a book to the catalog. Admin only.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.library.CreateBook(c.Request().Context(), token, toCreateBookInput(req))
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.WithLabelValues(string(book.Type)).Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Stats returns catalog and loan aggregates. Admin only.
//
// @Summary      Library statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *BookHandler) Stats(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	stats, err := h.library.Statistics(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		Books:       stats.Books,
		Loans:       stats.Loans,
		ActiveLoans: stats.ActiveLoans,
	})
}
