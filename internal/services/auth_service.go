package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/repositories"
	"backoffice/internal/store"
	"backoffice/internal/utils"
)

const AccessTokenDuration = 24 * time.Hour

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// TokenBlacklist remembers revoked token ids.
type TokenBlacklist interface {
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	restaurants *repositories.RestaurantRepository
	tables      *repositories.TableRepository
	blacklist   TokenBlacklist
	secret      []byte
}

func NewAuthService(
	restaurants *repositories.RestaurantRepository,
	tables *repositories.TableRepository,
	blacklist TokenBlacklist,
	secret []byte,
) *AuthService {
	return &AuthService{
		restaurants: restaurants,
		tables:      tables,
		blacklist:   blacklist,
		secret:      secret,
	}
}

type SignupInput struct {
	Name     string `json:"restaurant_name"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what the client needs after a successful login. HasTables
// tells it whether to open table setup first.
type LoginResult struct {
	Session     models.Session `json:"session"`
	AccessToken string         `json:"access_token"`
	HasTables   bool           `json:"has_tables"`
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:    in.Name,
		Address: in.Address,
		Contact: in.Contact,
		Email:   in.Email,
	}
	restaurant.Prepare()
	password := strings.TrimSpace(in.Password)

	switch {
	case restaurant.Name == "":
		return nil, validationError("restaurant_name", "required")
	case restaurant.Address == "":
		return nil, validationError("address", "required")
	case restaurant.Contact == "":
		return nil, validationError("contact", "required")
	case restaurant.Email == "":
		return nil, validationError("email", "required")
	case password == "":
		return nil, validationError("password", "required")
	case !contactPattern.MatchString(restaurant.Contact):
		return nil, validationError("contact", "must be 10 digits")
	case !emailPattern.MatchString(restaurant.Email):
		return nil, validationError("email", "malformed address")
	}

	existing, err := s.restaurants.FindByEmail(ctx, restaurant.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateError{Field: "email", Key: restaurant.Email}
	}

	hash, err := utils.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	restaurant.PasswordHash = hash

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, &DuplicateError{Field: "email", Key: restaurant.Email}
		}
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	restaurant.PasswordHash = ""
	return restaurant, nil
}

// Login checks credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	restaurant, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, ErrInvalidCredentials
	}
	if err := utils.VerifyPassword(restaurant.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := models.Session{RestaurantID: restaurant.ID, RestaurantName: restaurant.Name}
	token, _, err := utils.GenerateToken(s.secret, session, AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	hasTables, err := NewTableService(s.tables, session, "").HasTables(ctx)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Session: session, AccessToken: token, HasTables: hasTables}, nil
}

// findByEmail matches the address as typed first, then in its normalized
// form, so rows stored before normalization still resolve.
func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByEmail(ctx, email)
	if err != nil || restaurant != nil {
		return restaurant, err
	}
	normalized := models.NormalizeEmail(email)
	if normalized == email {
		return nil, nil
	}
	return s.restaurants.FindByEmail(ctx, normalized)
}

// Logout revokes the token id for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, jti string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	if err := s.blacklist.Blacklist(ctx, jti, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its session, rejecting revoked ids.
// Token problems wrap ErrInvalidToken; failures of the blacklist or the store
// are returned as they are. The restaurant name is read from the store so a
// renamed profile shows up without logging in again.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Session, *utils.Claims, error) {
	claims, err := utils.VerifyJWT(token, s.secret)
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return models.Session{}, nil, ErrTokenRevoked
	}

	session, err := claims.Session()
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	restaurant, err := s.restaurants.FindByID(ctx, session.RestaurantID)
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	if restaurant == nil {
		return models.Session{}, nil, fmt.Errorf("%w: restaurant no longer exists", ErrInvalidToken)
	}
	session.RestaurantName = restaurant.Name
	return session, claims, nil
}
