package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GraphScope is the client credentials scope granting the application's
// configured Graph permissions.
const GraphScope = "https://graph.microsoft.com/.default"

// Credentials identify the Azure AD application.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// TokenURL replaces the tenant authority with a plain OAuth2 token
	// endpoint when set.
	TokenURL string

	// Scopes defaults to GraphScope.
	Scopes []string
}

// NewTokenSource returns a cached token source for the client credentials
// flow. ctx is used for every token request the source makes.
func NewTokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, errors.New("client id and client secret are required")
	}

	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = []string{GraphScope}
	}

	if creds.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     creds.TokenURL,
			Scopes:       scopes,
		}
		return cc.TokenSource(ctx), nil
	}

	if creds.TenantID == "" {
		return nil, errors.New("tenant id is required")
	}

	cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create a credential from a secret: %w", err)
	}

	return oauth2.ReuseTokenSource(nil, NewCredentialTokenSource(ctx, cred, scopes...)), nil
}

// credentialTokenSource adapts an azcore.TokenCredential to oauth2.TokenSource.
type credentialTokenSource struct {
	ctx    context.Context
	cred   azcore.TokenCredential
	scopes []string
}

// NewCredentialTokenSource wraps any Azure SDK credential.
func NewCredentialTokenSource(ctx context.Context, cred azcore.TokenCredential, scopes ...string) oauth2.TokenSource {
	return &credentialTokenSource{ctx: ctx, cred: cred, scopes: scopes}
}

func (s *credentialTokenSource) Token() (*oauth2.Token, error) {
	at, err := s.cred.GetToken(s.ctx, policy.TokenRequestOptions{Scopes: s.scopes})
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: at.Token,
		TokenType:   "Bearer",
		Expiry:      at.ExpiresOn,
	}, nil
}
