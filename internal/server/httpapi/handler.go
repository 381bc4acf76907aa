package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type createPostRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *HTTPServer) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.ReadyTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error(ctx, "readiness check failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msgDatabaseUnreachable})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "database": "connected"})
}

func (s *HTTPServer) signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	result, err := s.users.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		s.fail(c, "signup failed", err)
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", result.User.ID, "username", result.User.Username)
	c.JSON(http.StatusCreated, result)
}

func (s *HTTPServer) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	result, err := s.users.Login(ctx, req.LoginID, req.Password)
	if err != nil {
		s.fail(c, "login failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) me(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, msgMissingToken)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": claims})
}

func (s *HTTPServer) listPosts(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := s.posts.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to fetch posts", "error", err.Error())
		respondError(c, http.StatusInternalServerError, msgFetchPostsFailed)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) createPost(c *gin.Context) {
	ctx := c.Request.Context()

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgTitleRequired)
		return
	}

	content := req.Content
	if content != nil && *content == "" {
		content = nil
	}

	post, err := s.posts.Create(ctx, req.Title, content)
	if err != nil {
		if errors.Is(err, common.ErrTitleRequired) {
			respondError(c, http.StatusBadRequest, msgTitleRequired)
			return
		}
		s.logger.Error(ctx, "Failed to create post", "error", err.Error())
		respondError(c, http.StatusInternalServerError, msgCreatePostFailed)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// fail writes the mapped error response; unexpected errors are logged with
// their cause first.
func (s *HTTPServer) fail(c *gin.Context, msg string, err error) {
	status, text := authStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), msg,
			"request_id", c.GetString(string(requestIDKey)), "error", err.Error())
	}
	respondError(c, status, text)
}
