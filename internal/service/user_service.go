package service

import (
	"context"
	"time"

	"pulse/internal/models"
	"pulse/internal/repository"
	"pulse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account management and activity lookups.
type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

type SignupInput struct {
	Email     string
	Password  string
	Pseudonym string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	UserID    uint
	Pseudonym *string
	FirstName *string
	LastName  *string
	Password  *string
}

// UserActivity reports when a user last logged in and last made a request.
type UserActivity struct {
	UserID        uint       `json:"user_id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	LastRequestAt *time.Time `json:"last_request_at"`
}

// NewUserService returns a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Password:  string(hashedPassword),
		Pseudonym: in.Pseudonym,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and records the login time on success.
// Credential failures are deliberately indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	loginAt := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, err
	}
	user.LastLoginAt = &loginAt

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 100

	if in.Pseudonym != nil {
		if len(*in.Pseudonym) > maxNameLen {
			return nil, models.NewValidationError("Pseudonym too long (max 100 characters)")
		}
		user.Pseudonym = *in.Pseudonym
	}
	if in.FirstName != nil {
		if len(*in.FirstName) > maxNameLen {
			return nil, models.NewValidationError("First name too long (max 100 characters)")
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if len(*in.LastName) > maxNameLen {
			return nil, models.NewValidationError("Last name too long (max 100 characters)")
		}
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user together with their posts and likes.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// LastActivity returns the target user's login and request timestamps.
// Only the user themselves or an admin may look these up.
func (s *UserService) LastActivity(ctx context.Context, requesterID, targetID uint) (*UserActivity, error) {
	if requesterID != targetID {
		requester, err := s.userRepo.GetByID(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if !requester.IsAdmin {
			return nil, models.NewForbiddenError("You can only view your own activity")
		}
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &UserActivity{
		UserID:        target.ID,
		FirstName:     target.FirstName,
		LastName:      target.LastName,
		LastLoginAt:   target.LastLoginAt,
		LastRequestAt: target.LastRequestAt,
	}, nil
}
