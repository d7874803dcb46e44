package config

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"

	"az-group-manager/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// Validate checks the configuration and returns every problem found as a
// *multierror.Error, or nil.
func (c Config) Validate() error {
	var result *multierror.Error

	add := func(field string, value interface{}, message string) {
		result = multierror.Append(result, ValidationError{Field: field, Value: value, Message: message})
	}

	// The tenant only selects the Azure AD token endpoint.
	if c.TenantID == "" && c.TokenURL == "" {
		add("tenantId", c.TenantID, "is required unless tokenUrl is set (AZURE_TENANT_ID or --tenant-id)")
	}
	if c.ClientID == "" {
		add("clientId", c.ClientID, "is required (AZURE_CLIENT_ID or --client-id)")
	}
	if c.ClientSecret == "" {
		add("clientSecret", "", "is required (AZURE_CLIENT_SECRET or --client-secret)")
	}

	if c.ReconcileTime <= 0 {
		add("reconcileTime", c.ReconcileTime, "must be a positive number of seconds")
	}
	if c.RetryTime <= 0 {
		add("retryTime", c.RetryTime, "must be a positive number of seconds")
	}
	if c.ReconcileTime > 0 && c.RetryTime > 0 && c.RetryTime >= c.ReconcileTime {
		add("retryTime", c.RetryTime, fmt.Sprintf("must be shorter than reconcileTime (%d)", c.ReconcileTime))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		add("logLevel", c.LogLevel, err.Error())
	}

	if u, err := url.Parse(c.GraphBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("graphBaseUrl", c.GraphBaseURL, "must be an absolute URL")
	}
	if c.TokenURL != "" {
		if u, err := url.Parse(c.TokenURL); err != nil || u.Scheme == "" || u.Host == "" {
			add("tokenUrl", c.TokenURL, "must be an absolute URL")
		}
	}

	if c.FieldManager == "" {
		add("fieldManager", c.FieldManager, "must not be empty")
	}
	if c.MaxConcurrentReconciles < 1 {
		add("maxConcurrentReconciles", c.MaxConcurrentReconciles, "must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		add("requestTimeout", c.RequestTimeout, "must be a positive number of seconds")
	}

	return result.ErrorOrNil()
}
