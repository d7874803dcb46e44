package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/clock"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"az-group-manager/internal/convert"
	"az-group-manager/internal/store"
	groupsv1 "az-group-manager/pkg/apis/groups/v1"
	"az-group-manager/pkg/logging"
)

const (
	// DefaultReconcileInterval is the delay after a successful cycle.
	DefaultReconcileInterval = 300 * time.Second

	// DefaultRetryInterval is the delay after a failed cycle.
	DefaultRetryInterval = 10 * time.Second

	// ControllerName names the controller in logs and metrics.
	ControllerName = "azuregroupmanager"

	subsystem = "Reconciler"
)

// Options holds the scheduling settings of the reconciler.
type Options struct {
	ReconcileInterval       time.Duration
	RetryInterval           time.Duration
	MaxConcurrentReconciles int
}

// Option configures optional collaborators.
type Option func(*AzureGroupReconciler)

// WithClock replaces the clock used for status timestamps and durations.
func WithClock(clk clock.PassiveClock) Option {
	return func(r *AzureGroupReconciler) {
		r.clock = clk
	}
}

// WithEvents publishes cycle results as Kubernetes events.
func WithEvents(events EventRecorder) Option {
	return func(r *AzureGroupReconciler) {
		r.events = events
	}
}

// WithMetrics records cycle results in m.
func WithMetrics(m *Metrics) Option {
	return func(r *AzureGroupReconciler) {
		r.metrics = m
	}
}

// AzureGroupReconciler reconciles AzureGroupManager objects.
//
// It holds no per-object state; controller-runtime guarantees that a given
// manager is never reconciled twice at the same time.
type AzureGroupReconciler struct {
	client    client.Client
	directory DirectoryClient
	store     GroupStore
	events    EventRecorder
	metrics   *Metrics
	clock     clock.PassiveClock

	reconcileInterval       time.Duration
	retryInterval           time.Duration
	maxConcurrentReconciles int
}

// NewAzureGroupReconciler creates a reconciler. c is only used to read
// managers; every write goes through st.
func NewAzureGroupReconciler(c client.Client, dir DirectoryClient, st GroupStore, opts Options, options ...Option) *AzureGroupReconciler {
	r := &AzureGroupReconciler{
		client:                  c,
		directory:               dir,
		store:                   st,
		events:                  noopRecorder{},
		clock:                   clock.RealClock{},
		reconcileInterval:       opts.ReconcileInterval,
		retryInterval:           opts.RetryInterval,
		maxConcurrentReconciles: opts.MaxConcurrentReconciles,
	}
	if r.reconcileInterval <= 0 {
		r.reconcileInterval = DefaultReconcileInterval
	}
	if r.retryInterval <= 0 {
		r.retryInterval = DefaultRetryInterval
	}
	if r.maxConcurrentReconciles < 1 {
		r.maxConcurrentReconciles = 1
	}

	for _, o := range options {
		o(r)
	}
	return r
}

// Reconcile implements reconcile.Reconciler.
//
// Errors are never returned to controller-runtime. A failed cycle is retried
// after the retry interval through RequeueAfter instead.
func (r *AzureGroupReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	manager := &groupsv1.AzureGroupManager{}
	if err := r.client.Get(ctx, req.NamespacedName, manager); err != nil {
		if apierrors.IsNotFound(err) {
			// The AzureGroup goes away with its owner through garbage collection.
			logging.Debug(subsystem, "AzureGroupManager %s is gone", req.NamespacedName)
			r.metrics.forget(req.Namespace, req.Name)
			return ctrl.Result{}, nil
		}
		logging.Error(subsystem, err, "Failed to get AzureGroupManager %s", req.NamespacedName)
		return ctrl.Result{RequeueAfter: ErrorPolicy(err, r.retryInterval)}, nil
	}

	if !manager.DeletionTimestamp.IsZero() {
		logging.Debug(subsystem, "AzureGroupManager %s is being deleted", req.NamespacedName)
		return ctrl.Result{}, nil
	}

	outcome := r.Sync(ctx, manager)
	if !outcome.Succeeded() {
		logging.Debug(subsystem, "Requeueing %s after failure while %s", req.NamespacedName, outcome.Stage)
	}
	return ctrl.Result{RequeueAfter: outcome.RequeueAfter}, nil
}

// Sync runs one complete cycle for manager and returns its outcome.
func (r *AzureGroupReconciler) Sync(ctx context.Context, manager *groupsv1.AzureGroupManager) Outcome {
	cycle := uuid.NewString()
	start := r.clock.Now()
	groupID := manager.Spec.GroupUID
	key := manager.Namespace + "/" + manager.Name

	logging.Debug(subsystem, "Starting cycle %s for %s (group %s)", cycle, key, groupID)

	out := Outcome{Stage: StageFetching}

	raw, err := r.directory.Fetch(ctx, groupID)
	if err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}

	out.Stage = StageConverting
	result, err := convert.Convert(raw)
	if err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}
	out.GroupName = result.Name
	out.Accepted = result.Spec.Count
	out.Rejected = result.Rejected

	for _, rejection := range result.Rejected {
		logging.Warn(subsystem, "Skipping member %s of group %s for %s: %s", rejection.ID, groupID, key, rejection.Reason)
	}

	out.Stage = StageWriting
	if _, err := r.store.UpsertGroup(ctx, result.Name, manager.Namespace, result.Spec, store.OwnerReference(manager)); err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}
	// A renamed directory group leaves the AzureGroup under its old name behind.
	if _, err := r.store.DeleteStaleGroups(ctx, manager, result.Name); err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}

	now := metav1.NewTime(r.clock.Now()).Rfc3339Copy()
	if err := r.store.PatchGroupStatus(ctx, manager.Namespace, result.Name, now); err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}
	if err := r.store.PatchManagerStatus(ctx, manager, now); err != nil {
		return r.fail(ctx, manager, cycle, start, out, err)
	}

	out.Stage = StageDone
	out.RequeueAfter = r.reconcileInterval

	logging.Info(subsystem, "Synced AzureGroup %s/%s from group %s: %d members, %d rejected (cycle %s, next in %s)",
		manager.Namespace, result.Name, groupID, out.Accepted, len(out.Rejected), cycle, out.RequeueAfter)

	r.events.Normal(ctx, manager, store.ReasonSynced,
		fmt.Sprintf("Applied AzureGroup %s with %d members", result.Name, out.Accepted))
	if len(out.Rejected) > 0 {
		r.events.Warning(ctx, manager, store.ReasonMembersRejected, rejectionMessage(out.Rejected))
	}
	r.metrics.recordSuccess(manager.Namespace, manager.Name, out.Accepted, len(out.Rejected), now.Time, r.clock.Since(start))

	return out
}

// fail finishes a cycle that stopped at out.Stage.
func (r *AzureGroupReconciler) fail(ctx context.Context, manager *groupsv1.AzureGroupManager, cycle string, start time.Time, out Outcome, err error) Outcome {
	category := Classify(err)

	out.Err = err
	out.RequeueAfter = ErrorPolicy(err, r.retryInterval)

	logging.Error(subsystem, err, "Cycle %s for %s/%s (group %s) failed while %s [%s], retrying in %s",
		cycle, manager.Namespace, manager.Name, manager.Spec.GroupUID, out.Stage, category, out.RequeueAfter)

	r.events.Warning(ctx, manager, store.ReasonSyncFailed,
		fmt.Sprintf("%s failed (%s): %v", out.Stage, category, err))
	r.metrics.recordFailure(out.Stage, category, r.clock.Since(start))

	return out
}

// rejectionMessage summarizes rejected members for an event; the full list is
// in the logs.
func rejectionMessage(rejected []convert.MemberRejection) string {
	const maxListed = 5

	msg := fmt.Sprintf("%d member(s) left out:", len(rejected))
	for i, rej := range rejected {
		if i == maxListed {
			msg += fmt.Sprintf(" and %d more", len(rejected)-maxListed)
			break
		}
		if i > 0 {
			msg += ";"
		}
		msg += " " + rej.Reason
	}
	return msg
}

// SetupWithManager registers the reconciler with mgr. It watches managers and
// the AzureGroups they own. Status-only changes are filtered out so that the
// cycle's own status patches do not trigger another cycle.
func (r *AzureGroupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&groupsv1.AzureGroupManager{}, builder.WithPredicates(predicate.GenerationChangedPredicate{})).
		Owns(&groupsv1.AzureGroup{}, builder.WithPredicates(predicate.GenerationChangedPredicate{})).
		WithOptions(controller.Options{MaxConcurrentReconciles: r.maxConcurrentReconciles}).
		Named(ControllerName).
		Complete(r)
}
