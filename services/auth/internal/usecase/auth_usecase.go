package usecase

import (
	"fmt"
	"strings"

	"myshop/pkg/jwt"
	"myshop/pkg/logger"
	"myshop/pkg/queue"
	"myshop/services/auth/internal/entity"
	"myshop/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate carries a partial profile change; nil fields are left as-is.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Flat      *string
	Street    *string
	City      *string
	Pin       *string
}

type AuthUseCase interface {
	Register(email, password, displayName string) (*entity.User, string, error)
	Login(email, password string, intendedRole entity.UserRole) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error)
	RequestPasswordReset(email string) error
	ListUsers(limit, offset int) ([]*entity.User, int64, error)
	SetUserStatus(userID string, status entity.UserStatus) (*entity.User, error)
	DeleteUser(userID string) error
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	queueClient *queue.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(email, password, displayName string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	firstName, lastName := splitDisplayName(displayName)

	user := &entity.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		Role:      entity.RoleUser,
		Status:    entity.StatusActive,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.sendEmailAsync(user.Email, "Welcome to MyShop",
		fmt.Sprintf("Hi %s, your account is ready. Happy shopping!", user.FirstName))

	user.Password = ""
	return user, token, nil
}

// Login requires the caller to say which surface they are signing in to.
// A customer token never opens the admin panel and an admin account never
// signs in through the storefront.
func (uc *authUseCase) Login(email, password string, intendedRole entity.UserRole) (*entity.User, string, error) {
	if intendedRole != entity.RoleUser && intendedRole != entity.RoleAdmin {
		return nil, "", fmt.Errorf("invalid login role")
	}

	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if user.Status != entity.StatusActive {
		return nil, "", fmt.Errorf("account is disabled")
	}

	if user.Role != intendedRole {
		return nil, "", fmt.Errorf("account cannot sign in here")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Flat != nil {
		user.Address.Flat = strings.TrimSpace(*update.Flat)
	}
	if update.Street != nil {
		user.Address.Street = strings.TrimSpace(*update.Street)
	}
	if update.City != nil {
		user.Address.City = strings.TrimSpace(*update.City)
	}
	if update.Pin != nil {
		user.Address.Pin = strings.TrimSpace(*update.Pin)
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update profile")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) RequestPasswordReset(email string) error {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Do not reveal whether the account exists
		return nil
	}

	resetToken, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate reset token: %v", err)
		return fmt.Errorf("failed to process reset request")
	}

	uc.sendEmailAsync(user.Email, "Reset your MyShop password",
		fmt.Sprintf("Use this token to reset your password: %s", resetToken))

	return nil
}

func (uc *authUseCase) ListUsers(limit, offset int) ([]*entity.User, int64, error) {
	users, total, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, total, nil
}

func (uc *authUseCase) SetUserStatus(userID string, status entity.UserStatus) (*entity.User, error) {
	if status != entity.StatusActive && status != entity.StatusDisabled {
		return nil, fmt.Errorf("invalid status")
	}

	if err := uc.userRepo.SetStatus(userID, status); err != nil {
		uc.logger.Error("Failed to set user status: %v", err)
		return nil, fmt.Errorf("failed to update user status")
	}

	return uc.GetUser(userID)
}

func (uc *authUseCase) DeleteUser(userID string) error {
	if err := uc.userRepo.Delete(userID); err != nil {
		uc.logger.Error("Failed to delete user: %v", err)
		return fmt.Errorf("failed to delete user")
	}
	uc.logger.Info("Deleted user %s", userID)
	return nil
}

func (uc *authUseCase) sendEmailAsync(to, subject, body string) {
	if uc.queueClient == nil || to == "" {
		return
	}
	go func() {
		task := queue.EmailTask{To: to, Subject: subject, Body: body}
		if err := uc.queueClient.PublishEmailTask(task); err != nil {
			uc.logger.Warn("Failed to queue email for %s: %v", to, err)
		}
	}()
}

func splitDisplayName(displayName string) (string, string) {
	parts := strings.Fields(displayName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
