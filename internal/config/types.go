package config

import "time"

// Config is the complete operator configuration.
type Config struct {
	// Azure AD application credentials used for the client credentials flow.
	TenantID     string `yaml:"tenantId" env:"AZURE_TENANT_ID"`
	ClientID     string `yaml:"clientId" env:"AZURE_CLIENT_ID"`
	ClientSecret string `yaml:"clientSecret" env:"AZURE_CLIENT_SECRET"`

	// ReconcileTime is the delay in seconds before a successfully synced
	// manager is visited again.
	ReconcileTime int `yaml:"reconcileTime" env:"RECONCILE_TIME"`

	// RetryTime is the delay in seconds before a failed cycle is retried.
	RetryTime int `yaml:"retryTime" env:"RETRY_TIME"`

	LogLevel       string `yaml:"logLevel" env:"LOG_LEVEL"`
	StructuredLogs bool   `yaml:"structuredLogs" env:"STRUCTURED_LOGS"`

	// GraphBaseURL is the Microsoft Graph endpoint including the API version.
	GraphBaseURL string `yaml:"graphBaseUrl" env:"GRAPH_BASE_URL"`

	// TokenURL overrides the Azure AD token endpoint. When empty the tenant
	// authority is used.
	TokenURL string `yaml:"tokenUrl" env:"AZURE_TOKEN_URL"`

	// WatchNamespace restricts the operator to one namespace. Empty means all.
	WatchNamespace string `yaml:"watchNamespace" env:"WATCH_NAMESPACE"`

	MetricsBindAddress     string `yaml:"metricsBindAddress" env:"METRICS_BIND_ADDRESS"`
	HealthProbeBindAddress string `yaml:"healthProbeBindAddress" env:"HEALTH_PROBE_BIND_ADDRESS"`
	LeaderElect            bool   `yaml:"leaderElect" env:"LEADER_ELECT"`

	// FieldManager is the server-side apply field owner for AzureGroup objects.
	FieldManager string `yaml:"fieldManager" env:"FIELD_MANAGER"`

	MaxConcurrentReconciles int `yaml:"maxConcurrentReconciles" env:"MAX_CONCURRENT_RECONCILES"`

	// RequestTimeout bounds a single Graph request, in seconds.
	RequestTimeout int `yaml:"requestTimeout" env:"REQUEST_TIMEOUT"`
}

// ReconcileInterval returns ReconcileTime as a duration.
func (c Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileTime) * time.Second
}

// RetryInterval returns RetryTime as a duration.
func (c Config) RetryInterval() time.Duration {
	return time.Duration(c.RetryTime) * time.Second
}

// RequestTimeoutDuration returns RequestTimeout as a duration.
func (c Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
