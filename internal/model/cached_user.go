package model

import "github.com/google/uuid"

// CachedUser is the locally cached identity of a user known to the
// external identity provider.
type CachedUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

type UserAuthor struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}
