package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

const userColumns = `id, username, email, COALESCE(password_hash, ''), display_name, bio,
	profile_image_url, auth_provider, created_at, updated_at`

const (
	minSearchQueryLength = 2
	maxSearchResults     = 20
)

type UserService struct {
	db DBConn
}

func NewUserService(db DBConn) *UserService {
	return &UserService{db: db}
}

func scanUser(row Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Bio,
		&user.ProfileImageURL, &user.AuthProvider, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	username := strings.TrimSpace(params.Username)

	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)", email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	err = s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))", username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking username existence: %w", err)
	}
	if exists {
		return nil, ErrUsernameAlreadyExists
	}

	displayName := strings.TrimSpace(params.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, display_name, auth_provider)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		username, email, params.PasswordHash, displayName, models.AuthProviderLocal,
	))
	if err != nil {
		// Lost a race with a concurrent registration.
		switch uniqueViolationConstraint(err) {
		case "idx_users_email_lower":
			return nil, ErrEmailAlreadyExists
		case "idx_users_username_lower":
			return nil, ErrUsernameAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = $1",
		strings.ToLower(strings.TrimSpace(email)),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of params. An empty ProfileImageURL clears the image.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error) {
	var clearImage bool
	imageURL := params.ProfileImageURL
	if imageURL != nil && strings.TrimSpace(*imageURL) == "" {
		clearImage = true
		imageURL = nil
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`UPDATE users SET
		   display_name = COALESCE($2, display_name),
		   bio = COALESCE($3, bio),
		   profile_image_url = CASE WHEN $5 THEN NULL ELSE COALESCE($4, profile_image_url) END
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, params.DisplayName, params.Bio, imageURL, clearImage,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

func (s *UserService) Search(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicUser, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLength {
		return []models.PublicUser{}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	rows, err := s.db.Query(ctx,
		`SELECT id, username, display_name, profile_image_url FROM users
		 WHERE id != $1
		   AND (LOWER(username) LIKE $2 OR LOWER(display_name) LIKE $2)
		 ORDER BY username
		 LIMIT $3`,
		currentUserID, pattern, maxSearchResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	results := []models.PublicUser{}
	for rows.Next() {
		var u models.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return results, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
