package store

import (
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"

	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

// NewScheme returns a scheme with the built-in Kubernetes types and the
// groups API registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()

	// Add standard Kubernetes types, Events among them
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))

	utilruntime.Must(groupsv1.AddToScheme(scheme))

	return scheme
}
