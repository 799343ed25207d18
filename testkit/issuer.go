// Package testkit provides an in-process token issuer for entitlement
// tests. It serves a JWKS document over HTTP and signs tokens carrying
// the eduperson_entitlement claim, so verification paths run without a
// real identity provider.
//
// Example usage:
//
//	issuer := testkit.NewIssuer()
//	defer issuer.Close()
//
//	set, _ := jwk.Fetch(ctx, issuer.JWKSURL())
//	token := issuer.Token("user-1", "urn:geant:h-df.de:group:aai-admin#idp.example.org")
package testkit

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const keyID = "testkit-key-1"

// Issuer signs tokens and serves the matching JWKS.
type Issuer struct {
	server   *httptest.Server
	key      *rsa.PrivateKey
	audience string
}

// NewIssuer creates an issuer with a fresh RSA key pair and an audience
// of "aarckit-test". Call Close when done.
func NewIssuer() *Issuer {
	return NewIssuerWithAudience("aarckit-test")
}

// NewIssuerWithAudience creates an issuer with a specific audience claim.
func NewIssuerWithAudience(audience string) *Issuer {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic("testkit: rsa key generation failed: " + err.Error())
	}
	i := &Issuer{key: key, audience: audience}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/jwks.json", i.handleJWKS)
	i.server = httptest.NewServer(mux)
	return i
}

// URL returns the issuer URL; tokens carry it in their iss claim.
func (i *Issuer) URL() string { return i.server.URL }

// JWKSURL returns the address of the served JWKS document.
func (i *Issuer) JWKSURL() string { return i.server.URL + "/.well-known/jwks.json" }

// Audience returns the audience minted tokens carry.
func (i *Issuer) Audience() string { return i.audience }

// Close shuts down the JWKS server.
func (i *Issuer) Close() { i.server.Close() }

// Token mints a signed token asserting the given entitlement strings in
// the eduperson_entitlement claim.
func (i *Issuer) Token(subject string, entitlements ...string) string {
	return i.TokenWithClaims(subject, jwt.MapClaims{
		"eduperson_entitlement": entitlements,
	})
}

// TokenWithClaims mints a signed token with extra claims merged over the
// registered ones.
func (i *Issuer) TokenWithClaims(subject string, extra jwt.MapClaims) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": i.URL(),
		"aud": i.audience,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyID
	signed, err := token.SignedString(i.key)
	if err != nil {
		panic("testkit: token signing failed: " + err.Error())
	}
	return signed
}

// ExpiredToken mints a token that expired an hour ago.
func (i *Issuer) ExpiredToken(subject string, entitlements ...string) string {
	return i.TokenWithClaims(subject, jwt.MapClaims{
		"eduperson_entitlement": entitlements,
		"exp":                   time.Now().Add(-time.Hour).Unix(),
	})
}

type jwksKey struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (i *Issuer) handleJWKS(w http.ResponseWriter, _ *http.Request) {
	pub := &i.key.PublicKey
	doc := struct {
		Keys []jwksKey `json:"keys"`
	}{
		Keys: []jwksKey{{
			Kty: "RSA",
			Use: "sig",
			Kid: keyID,
			Alg: "RS256",
			N:   base64URLEncode(pub.N),
			E:   base64URLEncode(big.NewInt(int64(pub.E))),
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

func base64URLEncode(i *big.Int) string {
	b := i.Bytes()
	for len(b) > 0 && b[0] == 0x00 {
		b = b[1:]
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
