package types

import "fmt"

// Status codes carried in the response envelope meta. Every expected outcome of
// every endpoint maps to exactly one of these.
const (
	StatusOK                   = "OK"
	StatusMissingParameters    = "MISSING_PARAMETERS"
	StatusEmailExists          = "EMAIL_EXISTS"
	StatusUserExists           = "USER_EXISTS"
	StatusInvalidAuth          = "INVALID_AUTHENTICATION"
	StatusUserDoesNotExist     = "USER_DOES_NOT_EXIST"
	StatusSongDoesNotExist     = "SONG_DOES_NOT_EXIST"
	StatusBlipDoesNotExist     = "BLIP_DOES_NOT_EXIST"
	StatusCommentDoesNotExist  = "COMMENT_DOES_NOT_EXIST"
	StatusFavoriteDoesNotExist = "FAVORITE_DOES_NOT_EXIST"
	StatusError                = "ERR"
)

// statusMessages is the fixed code -> human readable message table. Client
// responses draw from this table only, never from internal error text.
var statusMessages = map[string]string{
	StatusOK:                   "",
	StatusMissingParameters:    "Missing required parameters",
	StatusEmailExists:          "Email already exists",
	StatusUserExists:           "User already exists",
	StatusInvalidAuth:          "Invalid authentication",
	StatusUserDoesNotExist:     "User ID does not exist",
	StatusSongDoesNotExist:     "Song ID does not exist",
	StatusBlipDoesNotExist:     "Blip ID does not exist",
	StatusCommentDoesNotExist:  "Comment ID does not exist",
	StatusFavoriteDoesNotExist: "Favorite does not exist",
	StatusError:                "An unexpected error occurred",
}

// StatusMessage returns the canonical message for a status code. Unknown codes
// fall back to the generic error message.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return statusMessages[StatusError]
}

// DomainError is an expected domain failure (missing reference, uniqueness
// violation, failed authentication). Handlers recover these at the boundary and
// turn them into an envelope error; they never surface as HTTP 5xx.
type DomainError struct {
	Status string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, StatusMessage(e.Status))
}

// NewDomainError creates a DomainError for a status code.
func NewDomainError(status string) *DomainError {
	return &DomainError{Status: status}
}
