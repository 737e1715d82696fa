package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/storage"
	"jobboard/internal/transport/dto"

	"golang.org/x/crypto/bcrypt"
)

const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type userService struct {
	store      storage.Store
	log        logging.Logger
	bcryptCost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(store storage.Store, log logging.Logger) UserService {
	return &userService{
		store:      store,
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if req.Password != req.PasswordConfirm {
		return nil, fieldError(ErrValidation, "password2", MsgPasswordMismatch)
	}

	users := s.store.Users()
	taken, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, MapRepoError(err, "checking username")
	}
	if taken {
		return nil, fieldError(ErrDuplicateUsername, "username", MsgDuplicateUsername)
	}
	taken, err = users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, MapRepoError(err, "checking email")
	}
	if taken {
		return nil, fieldError(ErrDuplicateEmail, "email", MsgDuplicateEmail)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleJobSeeker,
		IsActive:     true,
	})
	if err != nil {
		return nil, s.mapUserConflict(err, "creating user")
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// mapUserConflict turns a lost race on a unique column into the same error
// the pre-check would have produced.
func (s *userService) mapUserConflict(err error, operation string) error {
	switch storage.ConflictConstraint(err) {
	case constraintUsername:
		return fieldError(ErrDuplicateUsername, "username", MsgDuplicateUsername)
	case constraintEmail:
		return fieldError(ErrDuplicateEmail, "email", MsgDuplicateEmail)
	}
	return MapRepoError(err, operation)
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			s.log.Info(ctx, "login failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, MapRepoError(err, "fetching user for login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Info(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Info(ctx, "login failed: inactive user", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching user %d", userID))
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error) {
	var updated *models.User
	err := s.store.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		user, err := repos.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("fetching user %d", req.UserID))
		}

		email := strings.TrimSpace(req.Email)
		taken, err := repos.Users().ExistsByEmail(ctx, email, user.ID)
		if err != nil {
			return MapRepoError(err, "checking email")
		}
		if taken {
			return fieldError(ErrDuplicateEmail, "email", MsgDuplicateEmail)
		}

		user.Email = email
		user.FirstName = strings.TrimSpace(req.FirstName)
		user.LastName = strings.TrimSpace(req.LastName)
		user.Phone = optional(req.Phone)
		user.LinkedIn = optional(req.LinkedIn)

		updated, err = repos.Users().UpdateProfile(ctx, user)
		if err != nil {
			return s.mapUserConflict(err, "updating profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*models.User, bool, error) {
	users := s.store.Users()

	existing, err := users.GetByUsername(ctx, req.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, MapRepoError(err, "checking admin user")
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, false, err
	}

	user, err := users.Create(ctx, &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsSuperuser:  true,
		IsActive:     true,
	})
	if err != nil {
		if storage.ConflictConstraint(err) == constraintUsername {
			existing, getErr := users.GetByUsername(ctx, req.Username)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, s.mapUserConflict(err, "creating admin user")
	}

	s.log.Info(ctx, "admin user created", "user_id", user.ID, "username", user.Username)
	return user, true, nil
}
