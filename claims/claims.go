// Package claims extracts AARC-G002 entitlements from verified bearer
// tokens. Entitlements travel as the eduperson_entitlement claim, either
// a single string or a list of strings; each entry is parsed lax so
// IdP-issued values without an authority tail still resolve.
package claims

import (
	"context"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/sirupsen/logrus"

	"github.com/open-rails/aarckit/entitlement"
)

// ClaimName is the token claim carrying AARC-G002 entitlement values.
const ClaimName = "eduperson_entitlement"

// Verifier validates bearer tokens against an issuer's key set and
// extracts their entitlements.
type Verifier struct {
	issuer   string
	audience string
	keySet   jwk.Set
	log      logrus.FieldLogger
}

// VerifierOpt configures a Verifier.
type VerifierOpt func(*Verifier)

// WithAudience requires the token audience to contain aud.
func WithAudience(aud string) VerifierOpt {
	return func(v *Verifier) { v.audience = aud }
}

// WithLogger replaces the default logrus standard logger.
func WithLogger(log logrus.FieldLogger) VerifierOpt {
	return func(v *Verifier) { v.log = log }
}

// NewVerifier builds a verifier for tokens issued by issuer and signed by
// a key in keySet.
func NewVerifier(issuer string, keySet jwk.Set, opts ...VerifierOpt) *Verifier {
	v := &Verifier{
		issuer: issuer,
		keySet: keySet,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Entitlements verifies rawToken and parses its eduperson_entitlement
// claim. Entries that do not match the grammar are kept as degraded
// values (logged at warn level), never dropped, so callers see exactly
// what the token asserted. A token without the claim yields a nil slice.
func (v *Verifier) Entitlements(ctx context.Context, rawToken string) ([]entitlement.Entitlement, error) {
	if v.keySet == nil {
		return nil, errors.New("claims: missing key set")
	}
	parseOpts := []jwt.ParseOption{
		jwt.WithKeySet(v.keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithContext(ctx),
	}
	if v.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(v.audience))
	}
	token, err := jwt.ParseString(rawToken, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("claims: token verification failed: %w", err)
	}

	rawClaim, ok := token.Get(ClaimName)
	if !ok {
		return nil, nil
	}
	values := claimStrings(rawClaim)
	ents := make([]entitlement.Entitlement, 0, len(values))
	for _, raw := range values {
		e, _ := entitlement.Parse(raw, entitlement.Lax(), entitlement.Degrade())
		if !e.Conformant() {
			v.log.WithFields(logrus.Fields{
				"subject":     token.Subject(),
				"entitlement": raw,
			}).Warn("claims: entitlement did not match the AARC-G002 grammar")
		}
		ents = append(ents, e)
	}
	return ents, nil
}

// claimStrings coerces the JSON shapes the claim shows up in.
func claimStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
