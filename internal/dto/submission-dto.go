package dto

// SubmissionForm is the text part of the multipart submission form.
type SubmissionForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,basicemail"`
	Method          string `form:"method" validate:"required,oneof=wire crypto"`
	Amount          string `form:"amount" validate:"required"`
	TxID            string `form:"txid"`
	SelectedNetwork string `form:"selectedNetwork"`
}

// UploadFile is one file read from the multipart body.
type UploadFile struct {
	Filename string
	Bytes    []byte
}

type SubmissionFiles struct {
	IDFile       *UploadFile
	PaymentProof *UploadFile
}

type SubmissionCreatedResponse struct {
	ID string `json:"id"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required" example:"confirmed"`
}

// SubmissionResponse is the admin listing shape. Field names follow the
// dashboard client.
type SubmissionResponse struct {
	ID              string  `json:"id"`
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Method          string  `json:"method"`
	SelectedNetwork *string `json:"selectedNetwork"`
	Amount          *string `json:"amount"`
	TxID            *string `json:"txid"`
	IDFileURL       *string `json:"idFileUrl"`
	PaymentProofURL *string `json:"paymentProofUrl"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}
