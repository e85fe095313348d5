package service

import (
	"context"
	"errors"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// UserUpdate carries the optional fields of a profile update; nil means
// "leave unchanged".
type UserUpdate struct {
	Email    *string
	Username *string
	Password *string
	IsActive *bool
}

// --- Service Interface ---
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update UserUpdate) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

// --- Service Implementation ---

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile fetches a single user record.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns every registered user without password hashes.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateProfile applies the provided fields to the user's own record.
// Password changes are re-hashed; email/username changes re-check uniqueness.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update UserUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(ctx, *update.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Username != nil && *update.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, *update.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user.Username = *update.Username
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteAccount removes the user's own record. Their events and plans are
// left in place; cleanup of orphaned documents is an operational concern.
func (s *userService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	err := s.userRepo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
