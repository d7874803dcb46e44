package app

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"az-group-manager/internal/config"
	"az-group-manager/internal/directory"
	"az-group-manager/internal/reconciler"
	"az-group-manager/internal/store"
	"az-group-manager/pkg/logging"
)

// Services holds the collaborators of the reconciler.
type Services struct {
	// Directory reads groups from Microsoft Graph.
	Directory *directory.Client

	// Store is the only writer of AzureGroup objects and status timestamps.
	Store *store.Store

	// Events records Kubernetes events against managers.
	Events *store.Recorder

	// Metrics holds the reconciliation collectors. They are registered by
	// the caller.
	Metrics *reconciler.Metrics
}

// InitializeServices creates the services for cfg on top of the Kubernetes
// client c. ctx bounds every token request made for the lifetime of the
// returned services.
func InitializeServices(ctx context.Context, cfg config.Config, c client.Client) (*Services, error) {
	tokens, err := directory.NewTokenSource(ctx, directory.Credentials{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token source: %w", err)
	}

	dir := directory.NewClient(tokens,
		directory.WithBaseURL(cfg.GraphBaseURL),
		directory.WithTimeout(cfg.RequestTimeoutDuration()),
	)
	logging.Debug("Bootstrap", "Directory client targets %s", cfg.GraphBaseURL)

	return &Services{
		Directory: dir,
		Store:     store.New(c, cfg.FieldManager),
		Events:    store.NewRecorder(c, nil),
		Metrics:   reconciler.NewMetrics(),
	}, nil
}
