package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredential struct {
	scopes []string
	err    error
}

func (f *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: "azure-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestCredentialTokenSource(t *testing.T) {
	cred := &fakeCredential{}
	ts := NewCredentialTokenSource(context.Background(), cred, GraphScope)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "azure-token", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
	assert.True(t, tok.Valid())
	assert.Equal(t, []string{GraphScope}, cred.scopes)
}

func TestCredentialTokenSource_Error(t *testing.T) {
	ts := NewCredentialTokenSource(context.Background(), &fakeCredential{err: errors.New("AADSTS7000215")})

	_, err := ts.Token()
	assert.ErrorContains(t, err, "AADSTS7000215")
}

func TestNewTokenSource_TokenURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, GraphScope, r.Form.Get("scope"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"cc-token","token_type":"bearer","expires_in":3600}`)
	}))
	defer server.Close()

	ts, err := NewTokenSource(context.Background(), Credentials{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenURL:     server.URL,
	})
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "cc-token", tok.AccessToken)
}

func TestNewTokenSource_Validation(t *testing.T) {
	_, err := NewTokenSource(context.Background(), Credentials{TenantID: "t"})
	assert.Error(t, err)

	_, err = NewTokenSource(context.Background(), Credentials{ClientID: "c", ClientSecret: "s"})
	assert.ErrorContains(t, err, "tenant id")
}

func TestNewTokenSource_Azure(t *testing.T) {
	ts, err := NewTokenSource(context.Background(), Credentials{
		TenantID:     "00000000-0000-0000-0000-000000000000",
		ClientID:     "client",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, ts)
}
