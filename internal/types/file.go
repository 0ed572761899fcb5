package types

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	ID int64 `json:"id"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
