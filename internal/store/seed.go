// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/auth"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "changeme"

// SeedAccounts are created on first start when seeding is enabled.
var SeedAccounts = []CreateUserParams{
	{Email: "admin@example.com", Name: "Administrator", Role: model.RoleAdmin},
	{Email: "librarian@example.com", Name: "Librarian", Role: model.RoleLibrarian},
	{Email: "reader@example.com", Name: "Reader", Role: model.RoleUser},
}

var seedBooks = []struct{ title, author string }{
	{"Cien años de soledad", "Gabriel García Márquez"},
	{"Don Quijote de la Mancha", "Miguel de Cervantes"},
	{"Ficciones", "Jorge Luis Borges"},
	{"Rayuela", "Julio Cortázar"},
	{"Pedro Páramo", "Juan Rulfo"},
	{"La casa de los espíritus", "Isabel Allende"},
	{"El túnel", "Ernesto Sabato"},
	{"La ciudad y los perros", "Mario Vargas Llosa"},
	{"Los detectives salvajes", "Roberto Bolaño"},
	{"El Aleph", "Jorge Luis Borges"},
	{"Como agua para chocolate", "Laura Esquivel"},
	{"Crónica de una muerte anunciada", "Gabriel García Márquez"},
	{"La sombra del viento", "Carlos Ruiz Zafón"},
	{"Niebla", "Miguel de Unamuno"},
	{"La colmena", "Camilo José Cela"},
	{"Nada", "Carmen Laforet"},
	{"Marianela", "Benito Pérez Galdós"},
	{"Platero y yo", "Juan Ramón Jiménez"},
	{"El laberinto de la soledad", "Octavio Paz"},
	{"Veinte poemas de amor", "Pablo Neruda"},
	{"La tregua", "Mario Benedetti"},
	{"Aura", "Carlos Fuentes"},
	{"El amor en los tiempos del cólera", "Gabriel García Márquez"},
	{"Santa Evita", "Tomás Eloy Martínez"},
	{"Boquitas pintadas", "Manuel Puig"},
}

// Seed creates the default accounts and a sample catalog. It does nothing
// when enabled is false or the admin account already exists.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}
	q := New(db)

	_, err := q.GetUserByEmail(ctx, SeedAccounts[0].Email)
	if err == nil {
		slog.Info("seed data already present, skipping")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := New(tx)

	now := time.Now().UTC()
	for _, acc := range SeedAccounts {
		acc.PasswordHash = hash
		acc.CreatedAt = now
		if _, err := qtx.CreateUser(ctx, acc); err != nil {
			return err
		}
	}

	for i, b := range seedBooks {
		_, err := qtx.CreateBook(ctx, CreateBookParams{
			Title:       b.title,
			Author:      b.author,
			ISBN:        fmt.Sprintf("978-0-00-%06d-0", i+1),
			Description: fmt.Sprintf("**%s** by *%s*.", b.title, b.author),
			Copies:      1 + i%3,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded database",
		"accounts", len(SeedAccounts),
		"books", len(seedBooks),
		"password", DefaultPassword,
	)
	return nil
}
