package identity

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/pkg/errors"
)

// Claims is the decoded identity assertion attached to authenticated requests.
type Claims struct {
	Subject string
	Email   string
}

// Verifier validates bearer tokens issued by the external identity provider
// against the provider's published key set. Tokens are re-verified on every
// call; only the provider keys are cached and refreshed.
type Verifier struct {
	issuer string
	keySet jwk.Set
}

// NewVerifier registers the provider's JWKS endpoint in a refreshing cache and
// performs an initial fetch so a bad URL fails at startup instead of on the
// first request.
func NewVerifier(ctx context.Context, issuer string, jwksURL string) (*Verifier, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, errors.Wrapf(err, "error registering identity provider JWKS URL: %s", jwksURL)
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, errors.Wrapf(err, "error fetching identity provider key set from: %s", jwksURL)
	}
	return &Verifier{
		issuer: issuer,
		keySet: jwk.NewCachedSet(cache, jwksURL),
	}, nil
}

// NewStaticVerifier uses a fixed key set instead of a remote JWKS endpoint.
func NewStaticVerifier(issuer string, keySet jwk.Set) *Verifier {
	return &Verifier{issuer: issuer, keySet: keySet}
}

func (v *Verifier) Verify(ctx context.Context, token string) (Claims, error) {
	t, err := jwt.Parse(
		[]byte(token),
		jwt.WithContext(ctx),
		jwt.WithKeySet(v.keySet, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return Claims{}, errors.Wrap(err, "error validating bearer token")
	}

	email, _ := t.Get("email")
	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		return Claims{}, errors.Errorf("valid token contains no email claim, subject: %s", t.Subject())
	}
	return Claims{
		Subject: t.Subject(),
		Email:   emailStr,
	}, nil
}
