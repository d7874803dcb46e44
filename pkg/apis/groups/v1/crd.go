package v1

import (
	"bytes"
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

// AzureGroupManagerCRD returns the CustomResourceDefinition for AzureGroupManager.
func AzureGroupManagerCRD() *apiextensionsv1.CustomResourceDefinition {
	spec := apiextensionsv1.JSONSchemaProps{
		Type:     "object",
		Required: []string{"groupUid"},
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"groupUid": {
				Type:        "string",
				MinLength:   ptrInt64(1),
				Description: "GroupUID is the object id of the Azure AD group to synchronise.",
			},
		},
	}

	return newCRD(AzureGroupManagerKind, "azuregroupmanagers", "azuregroupmanager", spec,
		[]apiextensionsv1.CustomResourceColumnDefinition{
			{Name: "ID", Type: "string", JSONPath: ".spec.groupUid"},
			{Name: "Last Update", Type: "string", JSONPath: ".status.lastUpdate"},
			{Name: "Age", Type: "date", JSONPath: ".metadata.creationTimestamp"},
		})
}

// AzureGroupCRD returns the CustomResourceDefinition for AzureGroup.
func AzureGroupCRD() *apiextensionsv1.CustomResourceDefinition {
	member := apiextensionsv1.JSONSchemaProps{
		Type:     "object",
		Required: []string{"id", "displayName", "mail"},
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"id":          {Type: "string"},
			"displayName": {Type: "string"},
			"mail":        {Type: "string"},
		},
	}

	spec := apiextensionsv1.JSONSchemaProps{
		Type:     "object",
		Required: []string{"id", "members", "count", "displayName"},
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"id": {Type: "string"},
			"members": {
				Type:  "array",
				Items: &apiextensionsv1.JSONSchemaPropsOrArray{Schema: &member},
			},
			"count":       {Type: "integer", Format: "int64", Minimum: ptrFloat64(0)},
			"displayName": {Type: "string"},
			"description": {Type: "string", Nullable: true},
			"mail":        {Type: "string", Nullable: true},
		},
	}

	return newCRD(AzureGroupKind, "azuregroups", "azuregroup", spec,
		[]apiextensionsv1.CustomResourceColumnDefinition{
			{Name: "Count", Type: "integer", JSONPath: ".spec.count"},
			{Name: "ID", Type: "string", JSONPath: ".spec.id"},
			{Name: "Last Update", Type: "string", JSONPath: ".status.lastUpdate"},
		})
}

func newCRD(kind, plural, singular string, spec apiextensionsv1.JSONSchemaProps, columns []apiextensionsv1.CustomResourceColumnDefinition) *apiextensionsv1.CustomResourceDefinition {
	status := apiextensionsv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"lastUpdate": {Type: "string", Format: "date-time", Nullable: true},
		},
	}

	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apiextensionsv1.SchemeGroupVersion.String(),
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: plural + "." + GroupVersion.Group,
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: GroupVersion.Group,
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Kind:     kind,
				ListKind: kind + "List",
				Plural:   plural,
				Singular: singular,
			},
			Scope: apiextensionsv1.NamespaceScoped,
			Versions: []apiextensionsv1.CustomResourceDefinitionVersion{
				{
					Name:    GroupVersion.Version,
					Served:  true,
					Storage: true,
					Schema: &apiextensionsv1.CustomResourceValidation{
						OpenAPIV3Schema: &apiextensionsv1.JSONSchemaProps{
							Description: fmt.Sprintf("%s is the Schema for the %s API", kind, plural),
							Type:        "object",
							Required:    []string{"spec"},
							Properties: map[string]apiextensionsv1.JSONSchemaProps{
								"spec":   spec,
								"status": status,
							},
						},
					},
					Subresources: &apiextensionsv1.CustomResourceSubresources{
						Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
					},
					AdditionalPrinterColumns: columns,
				},
			},
		},
	}
}

// MarshalCRDs renders the AzureGroupManager and AzureGroup definitions as a
// single multi-document YAML stream.
func MarshalCRDs() ([]byte, error) {
	var buf bytes.Buffer
	for i, crd := range []*apiextensionsv1.CustomResourceDefinition{AzureGroupManagerCRD(), AzureGroupCRD()} {
		out, err := marshalCRD(crd)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal CRD %s: %w", crd.Name, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(out)
	}
	return buf.Bytes(), nil
}

// marshalCRD drops the server populated fields (status, creationTimestamp)
// so the output can be applied as is.
func marshalCRD(crd *apiextensionsv1.CustomResourceDefinition) ([]byte, error) {
	obj, err := runtime.DefaultUnstructuredConverter.ToUnstructured(crd)
	if err != nil {
		return nil, err
	}
	delete(obj, "status")
	if meta, ok := obj["metadata"].(map[string]interface{}); ok {
		delete(meta, "creationTimestamp")
	}
	return yaml.Marshal(obj)
}

func ptrInt64(v int64) *int64 { return &v }

func ptrFloat64(v float64) *float64 { return &v }
