package api

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Article struct {
	ID              string    `json:"id"`
	Headline        string    `json:"headline"`
	Summary         string    `json:"summary"`
	URL             string    `json:"url"`
	Source          string    `json:"source"`
	PublicationDate time.Time `json:"publicationDate"`
	CategoryID      string    `json:"categoryId,omitempty"`
}

type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthData is the envelope payload of register and login.
// Login responses may carry only the token.
type AuthData struct {
	Token    string `json:"token"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Subscription struct {
	CategoryID     string `json:"categoryId"`
	EmailFrequency string `json:"emailFrequency"`
	IsActive       bool   `json:"isActive"`
}

// SubscriptionUpdate carries a partial update: nil fields are omitted
// from the request body and left untouched by the server.
type SubscriptionUpdate struct {
	EmailFrequency *string `json:"emailFrequency,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// Frequencies accepted by the subscription endpoints.
const (
	FrequencyDaily  = "Daily"
	FrequencyWeekly = "Weekly"
)

// ArticleUpsert is the payload for POST /api/article. The server keys
// on URL and assigns the id.
type ArticleUpsert struct {
	Headline        string    `json:"headline"`
	Summary         string    `json:"summary"`
	URL             string    `json:"url"`
	Source          string    `json:"source"`
	PublicationDate time.Time `json:"publicationDate"`
	CategoryID      string    `json:"categoryId"`
}
