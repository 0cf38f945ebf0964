package models

// Auth API types
type RequestOtpRequest struct {
	Email string `json:"email"`
}

type RequestOtpResponse struct {
	Message string `json:"message"`
	// Otp is only populated outside production so the code can be read
	// without a mail inbox.
	Otp string `json:"otp,omitempty"`
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
	Name  string `json:"name,omitempty"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type MeResponse struct {
	User PublicUser `json:"user"`
}

// Notes API types
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	Note Note `json:"note"`
}

type ListNotesResponse struct {
	Notes []Note `json:"notes"`
}

type DeleteNoteResponse struct {
	Success bool `json:"success"`
}

// Error response
type ErrorResponse struct {
	Error string `json:"error"`
}
