package service

import (
	"context"
	"errors"
	"fmt"

	"job_portal/internal/model"
	"job_portal/internal/repository"
)

var ErrProfileNotFound = errors.New("role profile not found")

// ProfileService exposes the role profile linked to a credential
type ProfileService interface {
	Get(ctx context.Context, userID int, userType string) (interface{}, error)
	UpdateApplicant(ctx context.Context, userID int, req model.UpdateApplicantProfileRequest) (*model.ApplicantProfile, error)
	UpdateRecruiter(ctx context.Context, userID int, req model.UpdateRecruiterProfileRequest) (*model.RecruiterProfile, error)
	UpdateAdmin(ctx context.Context, userID int, req model.UpdateAdminProfileRequest) (*model.AdminProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Get returns the profile variant matching the credential's type.
func (s *profileService) Get(ctx context.Context, userID int, userType string) (interface{}, error) {
	switch userType {
	case model.TypeApplicant:
		p, err := s.profileRepo.FindApplicantByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProfileNotFound
		}
		return p, nil
	case model.TypeRecruiter:
		p, err := s.profileRepo.FindRecruiterByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProfileNotFound
		}
		return p, nil
	case model.TypeAdmin:
		p, err := s.profileRepo.FindAdminByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProfileNotFound
		}
		return p, nil
	}
	return nil, ErrInvalidUserType
}

// UpdateApplicant applies partial edits to an applicant profile. This is
// where upload retrieval paths get their durable home.
func (s *profileService) UpdateApplicant(ctx context.Context, userID int, req model.UpdateApplicantProfileRequest) (*model.ApplicantProfile, error) {
	p, err := s.profileRepo.FindApplicantByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicant profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Education != nil {
		p.Education = req.Education
	}
	if req.Skills != nil {
		p.Skills = req.Skills
	}
	if req.CGPA != nil {
		p.CGPA = *req.CGPA
	}
	if req.Resume != nil {
		p.Resume = req.Resume
	}
	if req.Profile != nil {
		p.Profile = req.Profile
	}

	if err := s.profileRepo.UpdateApplicant(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update applicant profile: %w", err)
	}
	return p, nil
}

// UpdateRecruiter applies partial edits to a recruiter profile
func (s *profileService) UpdateRecruiter(ctx context.Context, userID int, req model.UpdateRecruiterProfileRequest) (*model.RecruiterProfile, error) {
	p, err := s.profileRepo.FindRecruiterByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recruiter profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ContactNumber != nil {
		p.ContactNumber = *req.ContactNumber
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}

	if err := s.profileRepo.UpdateRecruiter(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update recruiter profile: %w", err)
	}
	return p, nil
}

// UpdateAdmin applies partial edits to an admin profile
func (s *profileService) UpdateAdmin(ctx context.Context, userID int, req model.UpdateAdminProfileRequest) (*model.AdminProfile, error) {
	p, err := s.profileRepo.FindAdminByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ContactNumber != nil {
		if *req.ContactNumber != "" && !contactNumberPattern.MatchString(*req.ContactNumber) {
			return nil, ErrInvalidContactNumber
		}
		p.ContactNumber = *req.ContactNumber
	}
	if req.Role != nil {
		p.Role = *req.Role
	}

	if err := s.profileRepo.UpdateAdmin(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update admin profile: %w", err)
	}
	return p, nil
}
