package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	ctrl "sigs.k8s.io/controller-runtime"

	"az-group-manager/internal/app"
	"az-group-manager/internal/config"
	"az-group-manager/pkg/logging"
)

// serveOptions holds the serve flags. Only flags that were set explicitly
// override the configuration file and the environment.
type serveOptions struct {
	configPath string

	tenantID     string
	clientID     string
	clientSecret string

	reconcileTime int
	retryTime     int

	graphBaseURL            string
	tokenURL                string
	watchNamespace          string
	metricsBindAddress      string
	healthProbeBindAddress  string
	leaderElect             bool
	fieldManager            string
	maxConcurrentReconciles int
	requestTimeout          int
}

func newServeCmd(opts *serveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the operator",
		Long: `Runs the operator until SIGINT or SIGTERM.

Every AzureGroupManager is synced on start and then every --reconcile-time
seconds. A failed sync is retried after --retry-time seconds, which must be
shorter.

Configuration is read from, in increasing precedence:
  - built-in defaults
  - the YAML file given with --config
  - environment variables (AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET,
    RECONCILE_TIME, RETRY_TIME, ...)
  - flags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	f.StringVarP(&opts.tenantID, "tenant-id", "t", "", "Azure AD tenant id (env AZURE_TENANT_ID)")
	f.StringVarP(&opts.clientID, "client-id", "i", "", "Azure AD application client id (env AZURE_CLIENT_ID)")
	f.StringVarP(&opts.clientSecret, "client-secret", "s", "", "Azure AD application client secret (env AZURE_CLIENT_SECRET)")
	f.IntVarP(&opts.reconcileTime, "reconcile-time", "b", config.DefaultReconcileTime, "Seconds between successful syncs (env RECONCILE_TIME)")
	f.IntVarP(&opts.retryTime, "retry-time", "r", config.DefaultRetryTime, "Seconds before a failed sync is retried (env RETRY_TIME)")
	f.StringVar(&opts.graphBaseURL, "graph-base-url", config.DefaultGraphBaseURL, "Microsoft Graph endpoint (env GRAPH_BASE_URL)")
	f.StringVar(&opts.tokenURL, "token-url", "", "OAuth2 token endpoint replacing the tenant authority (env AZURE_TOKEN_URL)")
	f.StringVar(&opts.watchNamespace, "watch-namespace", "", "Only watch this namespace (env WATCH_NAMESPACE)")
	f.StringVar(&opts.metricsBindAddress, "metrics-bind-address", config.DefaultMetricsBindAddress, "Metrics endpoint address, 0 disables it (env METRICS_BIND_ADDRESS)")
	f.StringVar(&opts.healthProbeBindAddress, "health-probe-bind-address", config.DefaultHealthProbeBindAddress, "Health probe address (env HEALTH_PROBE_BIND_ADDRESS)")
	f.BoolVar(&opts.leaderElect, "leader-elect", false, "Enable leader election (env LEADER_ELECT)")
	f.StringVar(&opts.fieldManager, "field-manager", config.DefaultFieldManager, "Server-side apply field manager (env FIELD_MANAGER)")
	f.IntVar(&opts.maxConcurrentReconciles, "max-concurrent-reconciles", config.DefaultMaxConcurrentReconciles, "Managers synced in parallel (env MAX_CONCURRENT_RECONCILES)")
	f.IntVar(&opts.requestTimeout, "request-timeout", config.DefaultRequestTimeout, "Seconds allowed for one Graph fetch (env REQUEST_TIMEOUT)")

	return cmd
}

// applyFlags copies every explicitly set flag onto cfg.
func (o *serveOptions) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}

	set("tenant-id", func() { cfg.TenantID = o.tenantID })
	set("client-id", func() { cfg.ClientID = o.clientID })
	set("client-secret", func() { cfg.ClientSecret = o.clientSecret })
	set("reconcile-time", func() { cfg.ReconcileTime = o.reconcileTime })
	set("retry-time", func() { cfg.RetryTime = o.retryTime })
	set("graph-base-url", func() { cfg.GraphBaseURL = o.graphBaseURL })
	set("token-url", func() { cfg.TokenURL = o.tokenURL })
	set("watch-namespace", func() { cfg.WatchNamespace = o.watchNamespace })
	set("metrics-bind-address", func() { cfg.MetricsBindAddress = o.metricsBindAddress })
	set("health-probe-bind-address", func() { cfg.HealthProbeBindAddress = o.healthProbeBindAddress })
	set("leader-elect", func() { cfg.LeaderElect = o.leaderElect })
	set("field-manager", func() { cfg.FieldManager = o.fieldManager })
	set("max-concurrent-reconciles", func() { cfg.MaxConcurrentReconciles = o.maxConcurrentReconciles })
	set("request-timeout", func() { cfg.RequestTimeout = o.requestTimeout })
	set("log-level", func() { cfg.LogLevel = rootLogLevel })
	set("structured-logs", func() { cfg.StructuredLogs = rootStructuredLogs })
}

// loadServeConfig resolves the layered configuration and validates it.
func loadServeConfig(cmd *cobra.Command, opts *serveOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	opts.applyFlags(cmd.Flags(), &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func initLogging(cfg config.Config) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelInfo
	}
	format := logging.FormatText
	if cfg.StructuredLogs {
		format = logging.FormatJSON
	}
	logging.Init(level, format, os.Stderr)
}

// runServe is the main entry point for the serve command.
func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadServeConfig(cmd, opts)
	if err != nil {
		return err
	}
	initLogging(cfg)
	logging.Info("Serve", "az-group-manager %s starting", GetVersion())

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		logging.Error("Serve", err, "Failed to load Kubernetes client configuration")
		return fmt.Errorf("failed to load Kubernetes client configuration: %w", err)
	}

	ctx := ctrl.SetupSignalHandler()

	application, err := app.NewApplication(ctx, cfg, restConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run(ctx)
}
