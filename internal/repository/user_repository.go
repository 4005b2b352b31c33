package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"educhat-backend/internal/domain"
	"educhat-backend/internal/repository/models"
	"educhat-backend/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(modelUser *models.User) *domain.User {
	if modelUser == nil {
		return nil
	}
	return &domain.User{
		ID:             modelUser.ID,
		Username:       modelUser.Username,
		Email:          modelUser.Email,
		FullName:       modelUser.FullName.String,
		HashedPassword: modelUser.HashedPassword,
		CreatedAt:      modelUser.CreatedAt,
		IsActive:       modelUser.IsActive,
	}
}

func fromDomainUser(domainUser *domain.User) *models.User {
	if domainUser == nil {
		return nil
	}
	return &models.User{
		ID:             domainUser.ID,
		Username:       domainUser.Username,
		Email:          domainUser.Email,
		FullName:       util.StringToNullString(domainUser.FullName),
		HashedPassword: domainUser.HashedPassword,
		CreatedAt:      domainUser.CreatedAt,
		IsActive:       domainUser.IsActive,
	}
}

// CreateUser inserts a new user and returns it with the generated id.
// Unique violations on username or email surface as DuplicateUser domain
// errors so the service layer can map them to a conflict response.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	modelUser := fromDomainUser(user)
	if modelUser.CreatedAt.IsZero() {
		modelUser.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (username, email, full_name, hashed_password, created_at, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		modelUser.Username,
		modelUser.Email,
		modelUser.FullName,
		modelUser.HashedPassword,
		modelUser.CreatedAt,
		modelUser.IsActive,
	).Scan(&modelUser.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			field := "username"
			if pqErr.Constraint == "users_email_key" {
				field = "email"
			}
			return nil, domain.NewDuplicateUserError(field)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toDomainUser(modelUser), nil
}

// GetUserByID retrieves a user by their internal id.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	var user models.User
	query := `SELECT id, username, email, full_name, hashed_password, created_at, is_active
	          FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Return nil, nil for not found, services can handle this
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByUsername retrieves a user by their unique username.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, username, email, full_name, hashed_password, created_at, is_active
	          FROM users WHERE username = $1`

	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByEmail retrieves a user by their unique email address.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, username, email, full_name, hashed_password, created_at, is_active
	          FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&user), nil
}
