package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/worklane/hrms/internal/database"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/repository/builder"
)

var userQuery = query.Definition{
	Table:      "users",
	SoftDelete: false,
	Filters: []query.Filter{
		{Key: "name", Kind: query.Partial, Column: "users.name"},
		{Key: "email", Kind: query.Partial, Column: "users.email"},
	},
	Sorts: map[string]string{
		"name":       "users.name",
		"email":      "users.email",
		"created_at": "users.created_at",
	},
}

var userColumns = []string{
	"users.id", "users.name", "users.email", "users.password",
	"users.created_at", "users.updated_at",
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository. Users
// hard-delete.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func scanUser(s rowScanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.User], error) {
	return fetchPage(ctx, r.db, userQuery, desc, userColumns, scanUser)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(userColumns...).
		From("users").
		Where("users.id = ?", id).
		Build()

	u, err := scanUser(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(userColumns...).
		From("users").
		Where("users.email = ?", email).
		Build()

	u, err := scanUser(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("users", "name", "email", "password", "created_at", "updated_at").
		Values(u.Name, u.Email, u.Password, u.CreatedAt, u.UpdatedAt).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&u.ID); err != nil {
		return database.TranslateError(err, "user")
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()

	b := builder.NewSQLBuilder().
		Update("users").
		Set("name", u.Name).
		Set("email", u.Email)
	if u.Password != "" {
		b.Set("password", u.Password)
	}
	stmt, args := b.
		Set("updated_at", u.UpdatedAt).
		Where("id = ?", u.ID).
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "user")
	}
	return database.TranslateError(requireAffected(res), "user")
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	stmt, args := builder.NewSQLBuilder().
		Delete("users").
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "user")
	}
	return database.TranslateError(requireAffected(res), "user")
}

func (r *userRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var o domain.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
