package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jrs-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users(name, username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		u.Name, u.Username, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `
		SELECT id, name, username, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	query := `
		SELECT id, name, username, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE username = $1
	`
	err := r.DB.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, username, password_hash, role, is_active, created_at, updated_at
		FROM users ORDER BY name
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET name = $1, username = $2, password_hash = $3, role = $4,
		    is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.DB.Exec(ctx, query,
		u.Name, u.Username, u.PasswordHash, u.Role, u.IsActive, u.ID)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
