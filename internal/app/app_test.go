package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"az-group-manager/internal/config"
	"az-group-manager/internal/store"
	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.TenantID = "00000000-0000-0000-0000-000000000000"
	cfg.ClientID = "client"
	cfg.ClientSecret = "secret"
	return cfg
}

func TestManagerOptions(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsBindAddress = ":9090"
	cfg.HealthProbeBindAddress = ":9091"
	cfg.LeaderElect = true

	opts := ManagerOptions(cfg)

	assert.Equal(t, ":9090", opts.Metrics.BindAddress)
	assert.Equal(t, ":9091", opts.HealthProbeBindAddress)
	assert.True(t, opts.LeaderElection)
	assert.Equal(t, LeaderElectionID, opts.LeaderElectionID)
	assert.Nil(t, opts.Cache.DefaultNamespaces, "all namespaces by default")
	assert.NotNil(t, opts.Logger.GetSink(), "manager logs through pkg/logging")

	require.NotNil(t, opts.Scheme)
	assert.True(t, opts.Scheme.Recognizes(groupsv1.GroupVersion.WithKind(groupsv1.AzureGroupManagerKind)))
	assert.True(t, opts.Scheme.Recognizes(groupsv1.GroupVersion.WithKind(groupsv1.AzureGroupKind)))
}

func TestManagerOptions_WatchNamespace(t *testing.T) {
	cfg := testConfig()
	cfg.WatchNamespace = "platform"

	opts := ManagerOptions(cfg)

	require.Len(t, opts.Cache.DefaultNamespaces, 1)
	assert.Contains(t, opts.Cache.DefaultNamespaces, "platform")
}

func TestInitializeServices(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()

	services, err := InitializeServices(context.Background(), testConfig(), c)
	require.NoError(t, err)

	assert.NotNil(t, services.Directory)
	assert.NotNil(t, services.Store)
	assert.NotNil(t, services.Events)
	assert.NotNil(t, services.Metrics)
}

func TestInitializeServices_TokenURL(t *testing.T) {
	var tokenRequests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			tokenRequests++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"t","token_type":"bearer","expires_in":3600}`)
		case "/v1.0/groups/g-1":
			fmt.Fprint(w, `{"id":"g-1","displayName":"Ops"}`)
		case "/v1.0/groups/g-1/members":
			fmt.Fprint(w, `{"value":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.TokenURL = server.URL + "/token"
	cfg.GraphBaseURL = server.URL + "/v1.0"
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()

	services, err := InitializeServices(context.Background(), cfg, c)
	require.NoError(t, err)

	raw, err := services.Directory.Fetch(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Ops", *raw.DisplayName)
	assert.Equal(t, 1, tokenRequests)
}

func TestInitializeServices_MissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.ClientSecret = ""
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()

	_, err := InitializeServices(context.Background(), cfg, c)
	assert.ErrorContains(t, err, "failed to create token source")
}
