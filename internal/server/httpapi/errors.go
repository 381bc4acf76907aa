package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/gin-gonic/gin"
)

// Wire messages. Clients match on these strings.
const (
	msgMissingFields   = "Missing fields"
	msgWeakPassword    = "Weak password"
	msgDuplicate       = "Username or email already exists"
	msgUserNotFound    = "User not found"
	msgInvalidPassword = "Invalid password"
	msgMissingToken    = "Missing token"
	msgInvalidToken    = "Invalid token"
	msgInternal        = "Internal error"

	msgTitleRequired       = "title is required"
	msgFetchPostsFailed    = "Failed to fetch posts"
	msgCreatePostFailed    = "Failed to create post"
	msgDatabaseUnreachable = "Database not reachable"
)

type errorResponse struct {
	Error string `json:"error"`
}

// authStatus maps a users.Service error to its status code and message.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, common.ErrWeakPassword):
		return http.StatusBadRequest, msgWeakPassword
	case errors.Is(err, common.ErrDuplicateAccount):
		return http.StatusConflict, msgDuplicate
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidPassword
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, msgMissingToken
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgInvalidToken
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}
