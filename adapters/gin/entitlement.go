package authgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/open-rails/aarckit/entitlement"
)

// entitlementsKey is the gin context key holding parsed entitlements set
// by an upstream middleware (e.g. a token verification layer).
const entitlementsKey = "aarckit.entitlements"

// DefaultHeader is the request header carrying percent-encoded
// entitlement values when no upstream middleware populated the context.
const DefaultHeader = "X-Entitlements"

// SetEntitlements stores the caller's parsed entitlements on the gin
// context for downstream handlers.
func SetEntitlements(c *gin.Context, ents []entitlement.Entitlement) {
	c.Set(entitlementsKey, ents)
}

// EntitlementsFromGin returns the caller's entitlements.
// Order of precedence:
//  1. Values set by SetEntitlements (verified token claims)
//  2. Percent-encoded values in the configured header, parsed lax with
//     non-matching entries degraded
func EntitlementsFromGin(c *gin.Context, header string) ([]entitlement.Entitlement, bool) {
	if v, ok := c.Get(entitlementsKey); ok {
		if ents, ok := v.([]entitlement.Entitlement); ok {
			return ents, true
		}
	}
	if header == "" {
		header = DefaultHeader
	}
	values := c.Request.Header.Values(header)
	if len(values) == 0 {
		return nil, false
	}
	ents := make([]entitlement.Entitlement, 0, len(values))
	for _, raw := range values {
		e, _ := entitlement.ParseEncoded(raw, entitlement.Lax(), entitlement.Degrade())
		ents = append(ents, e)
	}
	return ents, true
}

// RequireConfig configures the entitlement gate.
type RequireConfig struct {
	// Required is the entitlement the resource demands.
	Required entitlement.Entitlement
	// Header names the fallback entitlement header. Defaults to
	// DefaultHeader.
	Header string
	// Logger receives denial logs. Defaults to the logrus standard
	// logger.
	Logger logrus.FieldLogger
}

func (c *RequireConfig) defaulted() RequireConfig {
	out := *c
	if out.Header == "" {
		out.Header = DefaultHeader
	}
	if out.Logger == nil {
		out.Logger = logrus.StandardLogger()
	}
	return out
}

// RequireEntitlement aborts with 403 unless some entitlement the caller
// holds satisfies the required one. Group authority never influences the
// decision; it is provenance only.
func RequireEntitlement(cfg RequireConfig) gin.HandlerFunc {
	conf := cfg.defaulted()
	return func(c *gin.Context) {
		held, ok := EntitlementsFromGin(c, conf.Header)
		if ok {
			for _, h := range held {
				if conf.Required.IsSatisfiedBy(h) {
					c.Next()
					return
				}
			}
		}
		conf.Logger.WithFields(logrus.Fields{
			"required": conf.Required.Render(),
			"held":     len(held),
			"path":     c.Request.URL.Path,
		}).Warn("authgin: required entitlement not satisfied")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "missing required entitlement",
		})
	}
}
