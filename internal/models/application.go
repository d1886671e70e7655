package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/portal-api/internal/workflow"
)

// Application is a student's application to a job, with a snapshot of the applicant.
type Application struct {
	ID              string                     `db:"id" json:"id"`
	JobID           string                     `db:"job_id" json:"jobId"`
	ApplicantID     string                     `db:"applicant_id" json:"applicantId"`
	ApplicantName   string                     `db:"applicant_name" json:"applicantName"`
	ApplicantEmail  string                     `db:"applicant_email" json:"applicantEmail"`
	ApplicantResume string                     `db:"applicant_resume" json:"applicantResume"`
	ApplicantSkills pq.StringArray             `db:"applicant_skills" json:"applicantSkills"`
	CoverLetter     string                     `db:"cover_letter" json:"coverLetter"`
	Status          workflow.ApplicationStatus `db:"status" json:"status"`
	CreatedAt       time.Time                  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time                  `db:"updated_at" json:"updatedAt"`
}

// ApplicationDetail joins the application with the job it targets.
type ApplicationDetail struct {
	Application
	JobTitle    string  `db:"job_title" json:"jobTitle"`
	JobPostedBy string  `db:"job_posted_by" json:"-"`
	CompanyName string  `db:"company_name" json:"companyName"`
	JobLocation string  `db:"job_location" json:"jobLocation"`
	JobType     JobType `db:"job_type" json:"jobType"`
}
