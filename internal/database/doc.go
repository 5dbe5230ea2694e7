// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, transaction scopes
//	├── books/           # Book CRUD operations
//	├── users/           # User CRUD operations
//	└── borrows/         # Borrowed-book records keyed by book id
//
// # Transaction Scopes
//
// Repositories never hold the root connection. Callers open a scope and build
// the repositories they need on the scoped handle:
//
//	err := db.Transaction(ctx, func(tx *gorm.DB) error {
//		book, err := books.NewRepository(tx).GetByID(id)
//		...
//	})
//
// # Referential Integrity
//
// SQLite foreign keys are enabled through the connection string. Deleting a
// book or a user cascades to its borrowed_books rows.
package database
