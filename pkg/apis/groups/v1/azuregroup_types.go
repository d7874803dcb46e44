package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Member is a single, fully populated member of an Azure AD group.
// Two members are the same member when their IDs match.
type Member struct {
	// ID is the directory object id of the member.
	ID string `json:"id"`

	// DisplayName is the member's display name in the directory.
	DisplayName string `json:"displayName"`

	// Mail is the member's primary e-mail address.
	Mail string `json:"mail"`
}

// AzureGroupSpec is the projection of an Azure AD group.
type AzureGroupSpec struct {
	// ID is the object id of the Azure AD group.
	ID string `json:"id"`

	// Members holds every member that passed validation, in directory order.
	Members []Member `json:"members"`

	// Count is always the length of Members.
	Count int `json:"count"`

	// DisplayName is the group's display name.
	DisplayName string `json:"displayName"`

	// Description is the group's description, if it has one.
	Description *string `json:"description,omitempty"`

	// Mail is the group's e-mail address, if it is mail enabled.
	Mail *string `json:"mail,omitempty"`
}

// AzureGroupStatus defines the observed state of AzureGroup
type AzureGroupStatus struct {
	// LastUpdate is the time the group was last written by the operator.
	LastUpdate *metav1.Time `json:"lastUpdate,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Count",type="integer",JSONPath=".spec.count"
// +kubebuilder:printcolumn:name="ID",type="string",JSONPath=".spec.id"
// +kubebuilder:printcolumn:name="Last Update",type="string",JSONPath=".status.lastUpdate"

// AzureGroup is the Schema for the azuregroups API
type AzureGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AzureGroupSpec   `json:"spec,omitempty"`
	Status AzureGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AzureGroupList contains a list of AzureGroup
type AzureGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AzureGroup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&AzureGroup{}, &AzureGroupList{})
}
