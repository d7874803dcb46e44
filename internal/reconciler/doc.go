// Package reconciler drives AzureGroupManager objects towards their directory
// group.
//
// # Overview
//
// Every reconciliation cycle runs the full pipeline from scratch:
//
//	Idle -> Fetching -> Converting -> Writing -> Done
//
// Fetching reads the group from Microsoft Graph, Converting validates it into
// an AzureGroup spec, and Writing applies the AzureGroup, then stamps
// status.lastUpdate on the group and on the manager. Nothing is cached between
// cycles.
//
// A failure at any stage ends the cycle. Writes that already happened stay in
// place; the next cycle derives the complete desired state again. Failures are
// never returned to controller-runtime: the cycle is requeued after the
// configured retry interval instead, so the framework's exponential backoff
// does not stretch the retry cadence. A successful cycle is requeued after the
// reconcile interval.
//
// # Error Categories
//
// Classify sorts failures for logs, events and metrics:
//
//   - transport: token acquisition, HTTP status and decoding failures
//   - validation: a group without id, display name or usable name
//   - store: a rejected write or a manager without namespace
//   - unknown: anything else
//
// Members without a mail address are not failures. They are dropped, logged
// one by one and reported in a MembersRejected event.
//
// # Usage
//
//	r := reconciler.NewAzureGroupReconciler(mgr.GetClient(), dir, st,
//	    reconciler.Options{ReconcileInterval: 5 * time.Minute, RetryInterval: 10 * time.Second},
//	    reconciler.WithEvents(store.NewRecorder(mgr.GetClient(), nil)),
//	    reconciler.WithMetrics(metrics),
//	)
//	if err := r.SetupWithManager(mgr); err != nil {
//	    return err
//	}
package reconciler
