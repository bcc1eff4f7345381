package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> screen default) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length" validate:"min=6,max=32"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Strength int    `json:"strength"`
	Label    string `json:"label"`
}

// StrengthRequest asks for the score of a configuration without generating a password.
type StrengthRequest struct {
	Length    int   `json:"length" validate:"min=6,max=32"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// StrengthResponse represents a strength estimate.
type StrengthResponse struct {
	Strength int    `json:"strength"`
	Max      int    `json:"max"`
	Label    string `json:"label"`
}
