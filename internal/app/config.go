package app

import (
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"az-group-manager/internal/config"
	"az-group-manager/internal/store"
	"az-group-manager/pkg/logging"
)

// LeaderElectionID is the name of the lease used when leader election is on.
const LeaderElectionID = "az-group-manager.kerwood.github.com"

// ManagerOptions translates the operator configuration into controller-runtime
// manager options.
func ManagerOptions(cfg config.Config) ctrl.Options {
	opts := ctrl.Options{
		Scheme: store.NewScheme(),
		Metrics: metricsserver.Options{
			BindAddress: cfg.MetricsBindAddress,
		},
		HealthProbeBindAddress: cfg.HealthProbeBindAddress,
		LeaderElection:         cfg.LeaderElect,
		LeaderElectionID:       LeaderElectionID,
		Logger:                 logging.Logr("Manager"),
	}

	if cfg.WatchNamespace != "" {
		opts.Cache = cache.Options{
			DefaultNamespaces: map[string]cache.Config{
				cfg.WatchNamespace: {},
			},
		}
	}

	return opts
}
