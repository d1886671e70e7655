package models

import "time"

// JobType enumerates the supported employment types.
type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobContract   JobType = "Contract"
	JobInternship JobType = "Internship"
	JobRemote     JobType = "Remote"
)

// Job is a recruiter posting. Company fields are copied from the recruiter at creation.
type Job struct {
	ID               string     `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description"`
	Requirements     string     `db:"requirements" json:"requirements"`
	Location         string     `db:"location" json:"location"`
	Salary           string     `db:"salary" json:"salary"`
	JobType          JobType    `db:"job_type" json:"jobType"`
	ExperienceLevel  string     `db:"experience_level" json:"experienceLevel"`
	PostedBy         string     `db:"posted_by" json:"postedBy"`
	CompanyName      string     `db:"company_name" json:"companyName"`
	CompanyLogo      string     `db:"company_logo" json:"companyLogo"`
	Positions        int        `db:"positions" json:"positions"`
	Deadline         *time.Time `db:"deadline" json:"deadline,omitempty"`
	IsActive         bool       `db:"is_active" json:"isActive"`
	ApplicationCount int        `db:"application_count" json:"applicationCount"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// JobFilter narrows the public job listing.
type JobFilter struct {
	JobType  string
	Location string
	Search   string
}
