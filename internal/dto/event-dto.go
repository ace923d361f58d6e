package dto

const (
	EventSubmissionCreated   = "submission.created"
	EventSubmissionConfirmed = "submission.confirmed"
)

type SubmissionEvent struct {
	Type         string `json:"type"`
	SubmissionID string `json:"submission_id"`
	Method       string `json:"method"`
	Status       string `json:"status"`
	At           string `json:"at"`
}
