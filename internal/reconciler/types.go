package reconciler

import (
	"context"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"az-group-manager/internal/convert"
	"az-group-manager/internal/directory"
	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

// Stage is a step of a reconciliation cycle.
type Stage string

const (
	StageFetching   Stage = "Fetching"
	StageConverting Stage = "Converting"
	StageWriting    Stage = "Writing"

	// StageDone marks a cycle where every step succeeded.
	StageDone Stage = "Done"
)

// Category groups failures by their origin.
type Category string

const (
	CategoryTransport  Category = "transport"
	CategoryValidation Category = "validation"
	CategoryStore      Category = "store"
	CategoryUnknown    Category = "unknown"
)

// Outcome is the result of one cycle for one manager.
type Outcome struct {
	// Stage is StageDone on success, otherwise the stage that failed.
	Stage Stage

	// GroupName is the AzureGroup name, known once conversion succeeded.
	GroupName string

	// Accepted is the number of members written.
	Accepted int

	// Rejected lists the members left out because of missing fields.
	Rejected []convert.MemberRejection

	// RequeueAfter is the delay before the next cycle.
	RequeueAfter time.Duration

	Err error
}

// Succeeded reports whether the cycle reached StageDone.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Stage == StageDone
}

// DirectoryClient fetches a group from the directory.
type DirectoryClient interface {
	Fetch(ctx context.Context, groupID string) (*directory.RawGroupResponse, error)
}

// GroupStore writes AzureGroup objects and status timestamps.
type GroupStore interface {
	UpsertGroup(ctx context.Context, name, namespace string, spec groupsv1.AzureGroupSpec, ownerRef metav1.OwnerReference) (*groupsv1.AzureGroup, error)
	DeleteStaleGroups(ctx context.Context, manager *groupsv1.AzureGroupManager, keep string) ([]string, error)
	PatchGroupStatus(ctx context.Context, namespace, name string, ts metav1.Time) error
	PatchManagerStatus(ctx context.Context, manager *groupsv1.AzureGroupManager, ts metav1.Time) error
}

// EventRecorder publishes Kubernetes events about a manager.
type EventRecorder interface {
	Normal(ctx context.Context, obj client.Object, reason, message string)
	Warning(ctx context.Context, obj client.Object, reason, message string)
}

type noopRecorder struct{}

func (noopRecorder) Normal(context.Context, client.Object, string, string)  {}
func (noopRecorder) Warning(context.Context, client.Object, string, string) {}
