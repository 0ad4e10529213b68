package models

import (
	"time"

	"github.com/lib/pq"
)

// ApprovalStatus tracks where an artist profile sits in the agency's
// review pipeline.
type ApprovalStatus string

const (
	ApprovalUnsubmitted ApprovalStatus = "unsubmitted"
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

// Artist is an agency performer. The gage criteria columns feed the fee
// calculator; price_min/price_max always reflect the last calculated (or
// admin-overridden) gage with the ±20% spread applied.
type Artist struct {
	ID             string         `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	PasswordHash   *string        `db:"password_hash" json:"-"`
	SubjectID      *string        `db:"subject_id" json:"-"`
	Phone          *string        `db:"phone" json:"phone,omitempty"`
	Address        *string        `db:"address" json:"address,omitempty"`
	Disciplines    pq.StringArray `db:"disciplines" json:"disciplines"`
	PriceMin       int            `db:"price_min" json:"price_min"`
	PriceMax       int            `db:"price_max" json:"price_max"`
	IsAdmin        bool           `db:"is_admin" json:"is_admin"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approval_status"`

	CircusEducation   bool    `db:"circus_education" json:"circus_education"`
	StageExperience   *string `db:"stage_experience" json:"stage_experience"`
	EmploymentType    *string `db:"employment_type" json:"employment_type"`
	AwardsLevel       *string `db:"awards_level" json:"awards_level"`
	PepeYears         int     `db:"pepe_years" json:"pepe_years"`
	PepeExclusivity   bool    `db:"pepe_exclusivity" json:"pepe_exclusivity"`
	CalculatedGage    *int    `db:"calculated_gage" json:"calculated_gage,omitempty"`
	AdminGageOverride *int    `db:"admin_gage_override" json:"admin_gage_override,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ArtistFilter captures filtering criteria for listing artists.
type ArtistFilter struct {
	Status     *ApprovalStatus
	Discipline string
	Search     string
	Page       int
	PageSize   int
}
