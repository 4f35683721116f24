package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth / users ---

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=reviewer approver"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Documents ---

type createDocumentRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content"` // opaque base64 blob, optional
}

// updateDocumentRequest mirrors the workflow mutation payload. Pointer fields
// distinguish "absent" from "empty".
type updateDocumentRequest struct {
	Content        *string `json:"content"`
	Status         *string `json:"status" validate:"omitempty,oneof=new pending in_progress changes_made approved"`
	Notes          *string `json:"notes"`
	ChangesSummary *string `json:"changes_summary"`
}

type sendDocumentEmailRequest struct {
	DocumentID     string `json:"document_id"     validate:"required"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	Subject        string `json:"subject"         validate:"required"`
	Message        string `json:"message"`
}

// --- Clauses ---

type clauseRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Domain      string `json:"domain"      validate:"required"`
}

// --- Chat ---

type chatRequest struct {
	Query      string `json:"query"       validate:"required"`
	DocumentID string `json:"document_id" validate:"required"`
	Filetype   string `json:"filetype"`
	TopK       int    `json:"top_k"       validate:"omitempty,gte=1,lte=20"`
}

type chatResponse struct {
	Response string `json:"response"`
}
