package workflow

import "fmt"

// ApplicationStatus mirrors applications.status in PostgreSQL.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {ApplicationAccepted, ApplicationRejected},
}

// ParseApplicationStatus rejects values outside the closed set.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanDecideApplication reports whether the posting recruiter may move from → to.
func CanDecideApplication(from, to ApplicationStatus) bool {
	return contains(applicationTransitions[from], to)
}

// CanWithdraw reports whether the applicant may still withdraw.
func CanWithdraw(from ApplicationStatus) bool {
	return from == ApplicationPending
}
