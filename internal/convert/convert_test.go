package convert

import (
	"errors"
	"strings"
	"testing"

	"az-group-manager/internal/directory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func platformTeam() *directory.RawGroupResponse {
	return &directory.RawGroupResponse{
		ID:          strPtr("g-123"),
		DisplayName: strPtr("Platform Team"),
		Description: strPtr("Runs the platform"),
		Members: []directory.RawMember{
			{ID: "u1", DisplayName: "Ada Lovelace", Mail: strPtr("ada@example.com")},
			{ID: "u2", DisplayName: "Build Agent", Mail: nil},
			{ID: "u3", DisplayName: "Linus", Mail: strPtr("linus@example.com")},
		},
	}
}

func TestConvert_PlatformTeam(t *testing.T) {
	result, err := Convert(platformTeam())
	require.NoError(t, err)

	assert.Equal(t, "platform-team", result.Name)
	assert.Equal(t, "g-123", result.Spec.ID)
	assert.Equal(t, "Platform Team", result.Spec.DisplayName)
	require.NotNil(t, result.Spec.Description)
	assert.Equal(t, "Runs the platform", *result.Spec.Description)
	assert.Nil(t, result.Spec.Mail)

	require.Len(t, result.Spec.Members, 2)
	assert.Equal(t, 2, result.Spec.Count)
	assert.Equal(t, "u1", result.Spec.Members[0].ID)
	assert.Equal(t, "u3", result.Spec.Members[1].ID)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "u2", result.Rejected[0].ID)
	assert.Equal(t, "Build Agent", result.Rejected[0].DisplayName)
	assert.Equal(t, "property 'mail' is missing on Build Agent", result.Rejected[0].Reason)
}

func TestConvert_MissingID(t *testing.T) {
	for name, raw := range map[string]*directory.RawGroupResponse{
		"nil response": nil,
		"nil id":       {DisplayName: strPtr("Platform Team")},
		"empty id":     {ID: strPtr(""), DisplayName: strPtr("Platform Team")},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Convert(raw)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrMissingID))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestConvert_MissingDisplayName(t *testing.T) {
	for name, displayName := range map[string]*string{
		"nil":   nil,
		"empty": strPtr(""),
	} {
		t.Run(name, func(t *testing.T) {
			raw := platformTeam()
			raw.DisplayName = displayName

			result, err := Convert(raw)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrMissingDisplayName))
			assert.False(t, errors.Is(err, ErrMissingID))
			assert.Equal(t, "invalid directory group g-123: missing display name", err.Error())

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "g-123", verr.GroupID)
		})
	}
}

func TestConvert_InvalidResourceName(t *testing.T) {
	raw := platformTeam()
	raw.DisplayName = strPtr("!!! ???")

	_, err := Convert(raw)
	assert.True(t, errors.Is(err, ErrInvalidResourceName))
	assert.Contains(t, err.Error(), "g-123")
}

func TestConvert_CountFollowsAcceptedMembers(t *testing.T) {
	tests := []struct {
		name         string
		mails        []*string
		wantAccepted int
	}{
		{"no members", nil, 0},
		{"all valid", []*string{strPtr("a@x"), strPtr("b@x")}, 2},
		{"all missing", []*string{nil, strPtr("")}, 0},
		{"mixed", []*string{nil, strPtr("a@x"), strPtr(""), strPtr("b@x")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := platformTeam()
			raw.Members = nil
			for i, mail := range tt.mails {
				raw.Members = append(raw.Members, directory.RawMember{
					ID:          string(rune('a' + i)),
					DisplayName: "member",
					Mail:        mail,
				})
			}

			result, err := Convert(raw)
			require.NoError(t, err)
			assert.Len(t, result.Spec.Members, tt.wantAccepted)
			assert.Equal(t, len(result.Spec.Members), result.Spec.Count)
			assert.Len(t, result.Rejected, len(tt.mails)-tt.wantAccepted)
			assert.NotNil(t, result.Spec.Members, "members serialize as a list, never null")
		})
	}
}

func TestConvert_DoesNotAliasInput(t *testing.T) {
	raw := platformTeam()
	raw.Mail = strPtr("platform@example.com")

	result, err := Convert(raw)
	require.NoError(t, err)

	*raw.Description = "changed"
	*raw.Mail = "changed"
	assert.Equal(t, "Runs the platform", *result.Spec.Description)
	assert.Equal(t, "platform@example.com", *result.Spec.Mail)
}

func TestConvert_Deterministic(t *testing.T) {
	first, err := Convert(platformTeam())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Convert(platformTeam())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Err: ErrMissingID}
	assert.Equal(t, "invalid directory group: missing id", err.Error())

	err = &ValidationError{GroupID: "g-1", Err: ErrInvalidResourceName}
	assert.True(t, strings.HasPrefix(err.Error(), "invalid directory group g-1: "))
}
