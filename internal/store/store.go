package store

import (
	"context"
	"encoding/json"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"az-group-manager/pkg/logging"

	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

// DefaultFieldManager owns the AzureGroup fields written by the operator.
const DefaultFieldManager = "azure-group-controller"

// Store is the only writer of AzureGroup objects.
type Store struct {
	client       client.Client
	fieldManager string
}

// New creates a Store. An empty fieldManager selects DefaultFieldManager.
func New(c client.Client, fieldManager string) *Store {
	if fieldManager == "" {
		fieldManager = DefaultFieldManager
	}
	return &Store{client: c, fieldManager: fieldManager}
}

// OwnerReference returns the controller reference an AzureGroup carries back
// to its manager.
func OwnerReference(manager *groupsv1.AzureGroupManager) metav1.OwnerReference {
	return *metav1.NewControllerRef(manager, groupsv1.GroupVersion.WithKind(groupsv1.AzureGroupManagerKind))
}

// UpsertGroup applies the complete desired state of the AzureGroup name in
// namespace. Fields previously owned by the field manager and absent from spec
// are removed by the API server. An AzureGroup controlled by another manager
// is left alone and ErrOwnedByOtherManager is returned.
func (s *Store) UpsertGroup(ctx context.Context, name, namespace string, spec groupsv1.AzureGroupSpec, ownerRef metav1.OwnerReference) (*groupsv1.AzureGroup, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingNamespace, ownerRef.Name)
	}

	existing := &groupsv1.AzureGroup{}
	err := s.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, existing)
	switch {
	case apierrors.IsNotFound(err):
	case err != nil:
		return nil, &WriteError{Op: "get", Kind: groupsv1.AzureGroupKind, Namespace: namespace, Name: name, Err: err}
	default:
		if owner := metav1.GetControllerOf(existing); owner != nil && owner.UID != ownerRef.UID {
			return nil, &WriteError{
				Op: "apply", Kind: groupsv1.AzureGroupKind, Namespace: namespace, Name: name,
				Err: fmt.Errorf("%w %s", ErrOwnedByOtherManager, owner.Name),
			}
		}
	}

	group := &groupsv1.AzureGroup{
		TypeMeta: metav1.TypeMeta{
			APIVersion: groupsv1.GroupVersion.String(),
			Kind:       groupsv1.AzureGroupKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:            name,
			Namespace:       namespace,
			OwnerReferences: []metav1.OwnerReference{ownerRef},
		},
		Spec: spec,
	}

	//nolint:staticcheck // typed apply configurations are not generated for this API
	if err := s.client.Patch(ctx, group, client.Apply, client.FieldOwner(s.fieldManager), client.ForceOwnership); err != nil {
		return nil, &WriteError{Op: "apply", Kind: groupsv1.AzureGroupKind, Namespace: namespace, Name: name, Err: err}
	}

	logging.Debug("Store", "Applied %s %s/%s with %d members", groupsv1.AzureGroupKind, namespace, name, spec.Count)
	return group, nil
}

// DeleteStaleGroups deletes the AzureGroups in the manager's namespace that
// the manager controls, except keep. They are left behind when the directory
// group is renamed. The names of the deleted groups are returned.
func (s *Store) DeleteStaleGroups(ctx context.Context, manager *groupsv1.AzureGroupManager, keep string) ([]string, error) {
	if manager.Namespace == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingNamespace, manager.Name)
	}

	var groups groupsv1.AzureGroupList
	if err := s.client.List(ctx, &groups, client.InNamespace(manager.Namespace)); err != nil {
		return nil, &WriteError{Op: "list", Kind: groupsv1.AzureGroupKind, Namespace: manager.Namespace, Err: err}
	}

	var deleted []string
	for i := range groups.Items {
		group := &groups.Items[i]
		if group.Name == keep {
			continue
		}
		owner := metav1.GetControllerOf(group)
		if owner == nil || owner.UID != manager.UID {
			continue
		}

		if err := s.client.Delete(ctx, group); client.IgnoreNotFound(err) != nil {
			return deleted, &WriteError{Op: "delete", Kind: groupsv1.AzureGroupKind, Namespace: group.Namespace, Name: group.Name, Err: err}
		}
		logging.Info("Store", "Deleted stale %s %s/%s of %s", groupsv1.AzureGroupKind, group.Namespace, group.Name, manager.Name)
		deleted = append(deleted, group.Name)
	}
	return deleted, nil
}

// PatchGroupStatus sets status.lastUpdate on the AzureGroup name in namespace.
func (s *Store) PatchGroupStatus(ctx context.Context, namespace, name string, ts metav1.Time) error {
	if namespace == "" {
		return fmt.Errorf("%w: %s", ErrMissingNamespace, name)
	}

	group := &groupsv1.AzureGroup{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
	return s.patchStatus(ctx, group, groupsv1.AzureGroupKind, ts)
}

// PatchManagerStatus sets status.lastUpdate on the manager.
func (s *Store) PatchManagerStatus(ctx context.Context, manager *groupsv1.AzureGroupManager, ts metav1.Time) error {
	if manager.Namespace == "" {
		return fmt.Errorf("%w: %s", ErrMissingNamespace, manager.Name)
	}

	target := &groupsv1.AzureGroupManager{
		ObjectMeta: metav1.ObjectMeta{Name: manager.Name, Namespace: manager.Namespace},
	}
	return s.patchStatus(ctx, target, groupsv1.AzureGroupManagerKind, ts)
}

func (s *Store) patchStatus(ctx context.Context, obj client.Object, kind string, ts metav1.Time) error {
	body, err := statusPatch(ts)
	if err != nil {
		return &WriteError{Op: "patch status of", Kind: kind, Namespace: obj.GetNamespace(), Name: obj.GetName(), Err: err}
	}

	if err := s.client.Status().Patch(ctx, obj, client.RawPatch(types.MergePatchType, body)); err != nil {
		return &WriteError{Op: "patch status of", Kind: kind, Namespace: obj.GetNamespace(), Name: obj.GetName(), Err: err}
	}
	return nil
}

func statusPatch(ts metav1.Time) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"status": map[string]interface{}{
			"lastUpdate": ts,
		},
	})
}
