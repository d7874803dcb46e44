package config

const (
	DefaultReconcileTime           = 300
	DefaultRetryTime               = 10
	DefaultLogLevel                = "info"
	DefaultGraphBaseURL            = "https://graph.microsoft.com/v1.0"
	DefaultMetricsBindAddress      = ":8080"
	DefaultHealthProbeBindAddress  = ":8081"
	DefaultFieldManager            = "azure-group-controller"
	DefaultMaxConcurrentReconciles = 1
	DefaultRequestTimeout          = 30
)

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		ReconcileTime:           DefaultReconcileTime,
		RetryTime:               DefaultRetryTime,
		LogLevel:                DefaultLogLevel,
		GraphBaseURL:            DefaultGraphBaseURL,
		MetricsBindAddress:      DefaultMetricsBindAddress,
		HealthProbeBindAddress:  DefaultHealthProbeBindAddress,
		FieldManager:            DefaultFieldManager,
		MaxConcurrentReconciles: DefaultMaxConcurrentReconciles,
		RequestTimeout:          DefaultRequestTimeout,
	}
}
