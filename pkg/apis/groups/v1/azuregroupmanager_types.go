package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AzureGroupManagerSpec defines the desired state of AzureGroupManager
type AzureGroupManagerSpec struct {
	// GroupUID is the object id of the Azure AD group to synchronise.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	GroupUID string `json:"groupUid"`
}

// AzureGroupManagerStatus defines the observed state of AzureGroupManager
type AzureGroupManagerStatus struct {
	// LastUpdate is the time of the last successful synchronisation.
	LastUpdate *metav1.Time `json:"lastUpdate,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="ID",type="string",JSONPath=".spec.groupUid"
// +kubebuilder:printcolumn:name="Last Update",type="string",JSONPath=".status.lastUpdate"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// AzureGroupManager is the Schema for the azuregroupmanagers API
type AzureGroupManager struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AzureGroupManagerSpec   `json:"spec,omitempty"`
	Status AzureGroupManagerStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AzureGroupManagerList contains a list of AzureGroupManager
type AzureGroupManagerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AzureGroupManager `json:"items"`
}

func init() {
	SchemeBuilder.Register(&AzureGroupManager{}, &AzureGroupManagerList{})
}
