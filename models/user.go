package models

// User represents a synthetic account row used for index benchmarking.
// It maps to the `users` table in SQLite.
type User struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Email    string `db:"email" json:"email"`
	Bio      string `db:"bio" json:"bio"`
	// AISummary only exists once the add_index_and_ai_column migration is applied.
	AISummary *string `db:"ai_summary" json:"ai_summary,omitempty"`
}

// UsersTable is the name of the table backing User.
const UsersTable = "users"

// FullNameIndex is the index added by the add_index_and_ai_column migration.
const FullNameIndex = "ix_users_full_name"
