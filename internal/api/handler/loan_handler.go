package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/api/metrics"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type LoanHandler struct {
	library ports.LibraryService
}

func NewLoanHandler(library ports.LibraryService) *LoanHandler {
	return &LoanHandler{library: library}
}

// Borrow opens a loan for the current user on the requested book.
//
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Book to borrow"
// @Success      201   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/loans/borrow [post]
func (h *LoanHandler) Borrow(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	var req borrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.library.Borrow(c.Request().Context(), token, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			metrics.BorrowConflictsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrBookUnavailable):
			metrics.BorrowConflictsTotal.WithLabelValues("unavailable").Inc()
		}
		return err
	}

	metrics.LoansBorrowedTotal.Inc()
	return c.JSON(http.StatusCreated, toLoanResponse(loan, time.Now().UTC()))
}

// Return closes a loan and restores the book's availability.
//
// @Summary      Return a borrowed book
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  loanResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid loan id")
	}

	loan, err := h.library.Return(c.Request().Context(), token, id)
	if err != nil {
		return err
	}

	metrics.LoansReturnedTotal.Inc()
	return c.JSON(http.StatusOK, toLoanResponse(loan, time.Now().UTC()))
}

// History lists the current user's loans, open and closed.
//
// @Summary      Loan history for the current user
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  loanListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/loans/history [get]
func (h *LoanHandler) History(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	loans, err := h.library.LoanHistory(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans, time.Now().UTC()))
}

// Get returns a single loan by its numeric ID.
//
// @Summary      Get a loan
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  loanResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid loan id")
	}

	loan, err := h.library.LoanByID(c.Request().Context(), token, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan, time.Now().UTC()))
}

// List returns every loan in the registry. Admin only.
//
// @Summary      List all loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  loanListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	loans, err := h.library.AllLoans(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans, time.Now().UTC()))
}
