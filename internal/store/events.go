package store

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"az-group-manager/pkg/logging"
	"az-group-manager/pkg/text"
)

// Event reasons recorded against AzureGroupManager objects.
const (
	ReasonSynced          = "Synced"
	ReasonSyncFailed      = "SyncFailed"
	ReasonMembersRejected = "MembersRejected"
)

// EventSource is the component name on every event.
const EventSource = "az-group-manager"

// maxMessageLen is the longest message the API server accepts on an Event.
const maxMessageLen = 1024

// Recorder creates core/v1 Events. Failures are logged and otherwise ignored;
// an event is never a reason to fail a reconciliation.
type Recorder struct {
	client client.Client
	clock  clock.PassiveClock
}

// NewRecorder creates a Recorder. A nil clk uses the real clock.
func NewRecorder(c client.Client, clk clock.PassiveClock) *Recorder {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Recorder{client: c, clock: clk}
}

// Normal records an informational event for obj.
func (r *Recorder) Normal(ctx context.Context, obj client.Object, reason, message string) {
	r.record(ctx, obj, corev1.EventTypeNormal, reason, message)
}

// Warning records a warning event for obj.
func (r *Recorder) Warning(ctx context.Context, obj client.Object, reason, message string) {
	r.record(ctx, obj, corev1.EventTypeWarning, reason, message)
}

func (r *Recorder) record(ctx context.Context, obj client.Object, eventType, reason, message string) {
	if r == nil || r.client == nil {
		return
	}

	gvk, err := r.client.GroupVersionKindFor(obj)
	if err != nil {
		logging.Warn("Events", "Failed to get GroupVersionKind for %s/%s: %v", obj.GetNamespace(), obj.GetName(), err)
		return
	}

	now := metav1.NewTime(r.clock.Now())
	event := &corev1.Event{
		ObjectMeta: metav1.ObjectMeta{
			GenerateName: obj.GetName() + "-",
			Namespace:    obj.GetNamespace(),
		},
		InvolvedObject: corev1.ObjectReference{
			APIVersion:      gvk.GroupVersion().String(),
			Kind:            gvk.Kind,
			Name:            obj.GetName(),
			Namespace:       obj.GetNamespace(),
			UID:             obj.GetUID(),
			ResourceVersion: obj.GetResourceVersion(),
		},
		Reason:         reason,
		Message:        text.OneLine(message, maxMessageLen),
		Type:           eventType,
		Source:         corev1.EventSource{Component: EventSource},
		FirstTimestamp: now,
		LastTimestamp:  now,
		Count:          1,
	}

	if err := r.client.Create(ctx, event); err != nil {
		logging.Warn("Events", "Failed to create %s event for %s/%s: %v", reason, obj.GetNamespace(), obj.GetName(), err)
	}
}
