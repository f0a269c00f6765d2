package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/gigledger/internal/auth"
	"github.com/nurpe/gigledger/internal/model"
)

const profileContextKey = "acting_profile"

// ProfileLoader resolves a profile id to the stored profile.
type ProfileLoader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Auth resolves the acting profile for every request. The primary path
// is a Bearer access token whose subject is the profile id. Outside
// production a plain Profile-Id header is also accepted, which keeps
// local testing simple.
func Auth(parser *auth.Parser, profiles ProfileLoader, allowHeaderFallback bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := resolveProfileID(c, parser, allowHeaderFallback)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), profileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		c.Set(profileContextKey, profile)
		c.Next()
	}
}

func resolveProfileID(c *gin.Context, parser *auth.Parser, allowHeaderFallback bool) (uuid.UUID, bool) {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		id, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}

	if allowHeaderFallback {
		if raw := c.GetHeader("Profile-Id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return uuid.Nil, false
			}
			return id, true
		}
	}

	return uuid.Nil, false
}

// MustProfile returns the profile resolved by Auth.
func MustProfile(c *gin.Context) (*model.Profile, bool) {
	value, exists := c.Get(profileContextKey)
	if !exists {
		return nil, false
	}
	profile, ok := value.(*model.Profile)
	return profile, ok
}
