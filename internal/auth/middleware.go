// Package auth resolves the caller's profile from the profile_id request
// header and makes it available to handlers.
package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigworks/ledgerd/pkg/models"
)

const profileKey = "auth.profile"

// ProfileResolver loads a profile by id.
type ProfileResolver interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Middleware authenticates requests by the profile_id header. Absent or
// unknown profiles get 401.
func Middleware(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader("profile_id"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		profile, err := resolver.GetProfile(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(profileKey, profile)
		c.Next()
	}
}

// Profile returns the authenticated profile stored by Middleware.
func Profile(c *gin.Context) (*models.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*models.Profile)
	return p, ok
}
