package convert

import (
	"fmt"

	"az-group-manager/internal/directory"
	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

// MemberRejection describes a directory member that was left out of the spec.
type MemberRejection struct {
	ID          string
	DisplayName string
	Reason      string
}

func (r MemberRejection) String() string {
	return r.Reason
}

// Result is a successful conversion.
type Result struct {
	// Name is the AzureGroup object name.
	Name string

	Spec groupsv1.AzureGroupSpec

	// Rejected lists the members that were dropped, in directory order.
	Rejected []MemberRejection
}

// Convert validates raw and builds the AzureGroup spec from it.
func Convert(raw *directory.RawGroupResponse) (*Result, error) {
	if raw == nil || raw.ID == nil || *raw.ID == "" {
		return nil, &ValidationError{Err: ErrMissingID}
	}
	groupID := *raw.ID

	if raw.DisplayName == nil || *raw.DisplayName == "" {
		return nil, &ValidationError{GroupID: groupID, Err: ErrMissingDisplayName}
	}
	displayName := *raw.DisplayName

	name, err := ResourceName(displayName)
	if err != nil {
		return nil, &ValidationError{GroupID: groupID, Err: err}
	}

	members := make([]groupsv1.Member, 0, len(raw.Members))
	var rejected []MemberRejection
	for _, m := range raw.Members {
		if m.Mail == nil || *m.Mail == "" {
			rejected = append(rejected, MemberRejection{
				ID:          m.ID,
				DisplayName: m.DisplayName,
				Reason:      fmt.Sprintf("property 'mail' is missing on %s", m.DisplayName),
			})
			continue
		}
		members = append(members, groupsv1.Member{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			Mail:        *m.Mail,
		})
	}

	return &Result{
		Name: name,
		Spec: groupsv1.AzureGroupSpec{
			ID:          groupID,
			Members:     members,
			Count:       len(members),
			DisplayName: displayName,
			Description: copyString(raw.Description),
			Mail:        copyString(raw.Mail),
		},
		Rejected: rejected,
	}, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
