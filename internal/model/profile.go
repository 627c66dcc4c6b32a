package model

// RatingUnrated is the sentinel stored until a profile or job receives its
// first rating.
const RatingUnrated = -1

// DefaultAdminRole is used when signup does not provide an admin role title.
const DefaultAdminRole = "System Administrator"

// DefaultAdminPermissions is the capability set granted to new admins.
var DefaultAdminPermissions = []string{
	"view_all_jobs",
	"view_all_users",
	"view_all_applications",
	"manage_users",
}

// Education is one entry of an applicant's education history.
type Education struct {
	InstitutionName string `json:"institution_name" binding:"required"`
	StartYear       int    `json:"start_year" binding:"required"`
	EndYear         *int   `json:"end_year,omitempty"`
}

// ApplicantProfile holds applicant-specific data linked 1:1 to a User.
type ApplicantProfile struct {
	ID        int64       `json:"id"`
	UserID    int         `json:"user_id"`
	Name      string      `json:"name"`
	Education []Education `json:"education"`
	Skills    []string    `json:"skills"` // insertion order preserved for display
	CGPA      float64     `json:"cgpa"`
	Rating    float64     `json:"rating"`
	Resume    *string     `json:"resume,omitempty"`
	Profile   *string     `json:"profile,omitempty"`
}

// RecruiterProfile holds recruiter-specific data linked 1:1 to a User.
type RecruiterProfile struct {
	ID            int64  `json:"id"`
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Bio           string `json:"bio"`
}

// AdminProfile holds administrator-specific data linked 1:1 to a User.
type AdminProfile struct {
	ID            int64    `json:"id"`
	UserID        int      `json:"user_id"`
	Name          string   `json:"name"`
	ContactNumber string   `json:"contact_number"`
	Role          string   `json:"role"`
	Permissions   []string `json:"permissions"`
}

// SignupRequest carries the credential fields plus the role-specific fields
// for whichever profile variant `type` selects.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Type     string `json:"type" binding:"required"`
	Name     string `json:"name" binding:"required"`

	// applicant fields
	Education []Education `json:"education"`
	Skills    []string    `json:"skills"`
	CGPA      *float64    `json:"cgpa"`
	Rating    *float64    `json:"rating"`
	Resume    *string     `json:"resume"`
	Profile   *string     `json:"profile"`

	// recruiter / admin fields
	ContactNumber string   `json:"contactNumber"`
	Bio           string   `json:"bio"`
	Role          string   `json:"role"`
	Permissions   []string `json:"permissions"`
}

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateApplicantProfileRequest allows partial edits of an applicant profile.
type UpdateApplicantProfileRequest struct {
	Name      *string     `json:"name,omitempty"`
	Education []Education `json:"education,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
	CGPA      *float64    `json:"cgpa,omitempty"`
	Resume    *string     `json:"resume,omitempty"`
	Profile   *string     `json:"profile,omitempty"`
}

// UpdateRecruiterProfileRequest allows partial edits of a recruiter profile.
type UpdateRecruiterProfileRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

// UpdateAdminProfileRequest allows partial edits of an admin profile.
type UpdateAdminProfileRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Role          *string `json:"role,omitempty"`
}
