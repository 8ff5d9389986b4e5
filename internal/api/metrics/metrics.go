// Package metrics defines and registers all custom Prometheus metrics for
// the library API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// LoansBorrowedTotal counts successful borrow operations.
var LoansBorrowedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_borrowed_total",
		Help:      "Total number of books successfully borrowed.",
	},
)

// LoansReturnedTotal counts successful return operations.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of books successfully returned.",
	},
)

// BorrowConflictsTotal counts borrow attempts rejected for a state reason.
// Label:
//   - reason: "unavailable" or "not_found"
var BorrowConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrow_conflicts_total",
		Help:      "Total number of borrow attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// BooksCreatedTotal counts books added to the catalog.
// Label:
//   - book_type: "DIGITAL", "AUDIO" or "EBOOK"
var BooksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books added to the catalog, by type.",
	},
	[]string{"book_type"},
)

// SearchesTotal counts catalog title searches.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of catalog title searches.",
	},
)

// SnapshotFailuresTotal counts failed snapshot writes.
// Label:
//   - file: the collection file that failed ("users.json", "books.json", "loans.json")
var SnapshotFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_failures_total",
		Help:      "Total number of failed collection snapshot writes, by file.",
	},
	[]string{"file"},
)
