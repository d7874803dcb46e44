package app

import (
	"context"
	"fmt"

	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"az-group-manager/internal/config"
	"az-group-manager/internal/reconciler"
	"az-group-manager/pkg/logging"
)

// Application is the assembled operator.
//
// Example usage:
//
//	app, err := app.NewApplication(ctx, cfg, ctrl.GetConfigOrDie())
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return app.Run(ctx)
type Application struct {
	config     config.Config
	manager    ctrl.Manager
	services   *Services
	reconciler *reconciler.AzureGroupReconciler
}

// NewApplication builds the manager, the services and the reconciler for cfg.
// cfg must already be validated.
func NewApplication(ctx context.Context, cfg config.Config, restConfig *rest.Config) (*Application, error) {
	mgr, err := ctrl.NewManager(restConfig, ManagerOptions(cfg))
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to create controller manager")
		return nil, fmt.Errorf("failed to create controller manager: %w", err)
	}

	services, err := InitializeServices(ctx, cfg, mgr.GetClient())
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := services.Metrics.Register(ctrlmetrics.Registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	r := reconciler.NewAzureGroupReconciler(mgr.GetClient(), services.Directory, services.Store,
		reconciler.Options{
			ReconcileInterval:       cfg.ReconcileInterval(),
			RetryInterval:           cfg.RetryInterval(),
			MaxConcurrentReconciles: cfg.MaxConcurrentReconciles,
		},
		reconciler.WithEvents(services.Events),
		reconciler.WithMetrics(services.Metrics),
	)
	if err := r.SetupWithManager(mgr); err != nil {
		return nil, fmt.Errorf("failed to set up reconciler: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return nil, fmt.Errorf("failed to add health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return nil, fmt.Errorf("failed to add ready check: %w", err)
	}

	return &Application{
		config:     cfg,
		manager:    mgr,
		services:   services,
		reconciler: r,
	}, nil
}

// Run starts the manager and blocks until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	scope := "all namespaces"
	if a.config.WatchNamespace != "" {
		scope = "namespace " + a.config.WatchNamespace
	}
	logging.Info("Bootstrap", "Starting manager for %s (reconcile every %s, retry after %s, leader election %t)",
		scope, a.config.ReconcileInterval(), a.config.RetryInterval(), a.config.LeaderElect)

	if err := a.manager.Start(ctx); err != nil {
		return fmt.Errorf("manager stopped: %w", err)
	}

	logging.Info("Bootstrap", "Manager stopped")
	return nil
}
