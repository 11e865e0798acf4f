package usecases

import (
	"errors"

	"chat-server/auth"
	"chat-server/entities"
	"chat-server/repositories"
)

var (
	// ErrUserNotFound means no account exists for the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthUseCase struct {
	Users  repositories.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthUseCase(users repositories.UserRepository, tokens *auth.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		Users:  users,
		hasher: auth.NewPasswordHasher(),
		tokens: tokens,
	}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register stores a new account with a salted hash of the password.
// The unique index on email makes a duplicate registration a storage error.
func (uc *AuthUseCase) Register(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return errors.New("username, email and password are required")
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	return uc.Users.Create(user)
}

// Login verifies the password for the account registered under email and
// issues a session token carrying that email.
func (uc *AuthUseCase) Login(email, password string) (*LoginResult, error) {
	user, err := uc.Users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.Sign(user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
