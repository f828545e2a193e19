// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// DBTX is the subset of *sql.DB and *sql.Tx used by Queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the application's SQL statements.
type Queries struct {
	db DBTX
}

// New creates Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// CreateUserParams holds the fields for a new user.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         model.Role
	CreatedAt    time.Time
}

const userColumns = `id, email, name, password_hash, role, created_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	u.Role = model.ParseRole(role)
	return u, err
}

// CreateUser inserts a user and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		arg.Email, arg.Name, arg.PasswordHash, string(arg.Role), arg.CreatedAt)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %s: %w", arg.Email, err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// GetUserByID fetches a user by id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// UpdateLastLogin records a successful sign-in.
func (q *Queries) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at, id)
	return err
}

// CreateBookParams holds the fields for a new book.
type CreateBookParams struct {
	Title       string
	Author      string
	ISBN        string
	Description string
	Copies      int
	CreatedAt   time.Time
}

const bookColumns = `id, title, author, isbn, description, copies, created_at`

func scanBook(row interface{ Scan(...any) error }) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.Copies, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// CreateBook inserts a book and returns it.
func (q *Queries) CreateBook(ctx context.Context, arg CreateBookParams) (model.Book, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO books (title, author, isbn, description, copies, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+bookColumns,
		arg.Title, arg.Author, arg.ISBN, arg.Description, arg.Copies, arg.CreatedAt)
	b, err := scanBook(row)
	if err != nil {
		return model.Book{}, fmt.Errorf("creating book %q: %w", arg.Title, err)
	}
	return b, nil
}

// GetBook fetches a book by id.
func (q *Queries) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return scanBook(q.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
}

// CountBooks returns the number of books in the catalog.
func (q *Queries) CountBooks(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// ListBooks returns one page of books ordered by title.
func (q *Queries) ListBooks(ctx context.Context, limit, offset int) ([]model.Book, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}
