package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/utils"
)

var (
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidUserType      = errors.New("account type must be one of applicant, recruiter, admin")
	ErrInvalidContactNumber = errors.New("contact number is invalid")
	ErrProfileCreation      = errors.New("failed to create role profile")
)

// contactNumberPattern is anchored: surrounding characters are rejected.
var contactNumberPattern = regexp.MustCompile(`^\+\d{1,3}\d{10}$`)

// AuthService provides signup orchestration and login
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtUtil     *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtUtil:     jwtUtil,
	}
}

// Signup creates exactly one credential and one matching role profile, or
// neither. The two writes are not transactional: if profile creation fails
// the credential is removed again by a compensating delete. A concurrent
// reader can observe the credential without its profile inside that window.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, string, error) {
	// Reject unknown types before any write.
	if !model.ValidUserType(req.Type) {
		return nil, "", ErrInvalidUserType
	}
	if req.Type == model.TypeAdmin && req.ContactNumber != "" && !contactNumberPattern.MatchString(req.ContactNumber) {
		return nil, "", ErrInvalidContactNumber
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Type:         req.Type,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	if err := s.createRoleProfile(ctx, user, req); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			// The compensating delete failed too: report both, the
			// credential is now orphaned.
			log.Printf("ERROR: profile creation for user %d failed (%v) and compensating delete also failed: %v", user.ID, err, delErr)
			return nil, "", fmt.Errorf("%w: %v (compensating credential delete failed: %v)", ErrProfileCreation, err, delErr)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrProfileCreation, err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *authService) createRoleProfile(ctx context.Context, user *model.User, req model.SignupRequest) error {
	switch user.Type {
	case model.TypeApplicant:
		cgpa := 0.0
		if req.CGPA != nil {
			cgpa = *req.CGPA
		}
		rating := float64(model.RatingUnrated)
		if req.Rating != nil {
			rating = *req.Rating
		}
		return s.profileRepo.CreateApplicant(ctx, &model.ApplicantProfile{
			UserID:    user.ID,
			Name:      req.Name,
			Education: req.Education,
			Skills:    req.Skills,
			CGPA:      cgpa,
			Rating:    rating,
			Resume:    req.Resume,
			Profile:   req.Profile,
		})
	case model.TypeRecruiter:
		return s.profileRepo.CreateRecruiter(ctx, &model.RecruiterProfile{
			UserID:        user.ID,
			Name:          req.Name,
			ContactNumber: req.ContactNumber,
			Bio:           req.Bio,
		})
	case model.TypeAdmin:
		role := req.Role
		if role == "" {
			role = model.DefaultAdminRole
		}
		permissions := req.Permissions
		if len(permissions) == 0 {
			permissions = model.DefaultAdminPermissions
		}
		return s.profileRepo.CreateAdmin(ctx, &model.AdminProfile{
			UserID:        user.ID,
			Name:          req.Name,
			ContactNumber: req.ContactNumber,
			Role:          role,
			Permissions:   permissions,
		})
	}
	// Unreachable: the type is validated before the credential write.
	return ErrInvalidUserType
}

// Login authenticates by email and password and returns a token bound to
// the credential id. A missing user and a wrong password are deliberately
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
