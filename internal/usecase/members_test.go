package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/testutil"
)

func TestListMembers_Execute(t *testing.T) {
	gw := &testutil.MockMemberGateway{Members: []domain.ProjectMember{{ID: "1", UserID: "5", Role: domain.RoleOwner}}}

	out, err := NewListMembers(gw).Execute(context.Background(), ListMembersInput{ProjectID: "1"})

	require.NoError(t, err)
	assert.Len(t, out.Members, 1)
}

func TestListMembers_Execute_Errors(t *testing.T) {
	_, err := NewListMembers(&testutil.MockMemberGateway{}).Execute(context.Background(), ListMembersInput{})
	assert.ErrorIs(t, err, domain.ErrNoProject)

	_, err = NewListMembers(&testutil.MockMemberGateway{ListErr: assert.AnError}).Execute(context.Background(), ListMembersInput{ProjectID: "1"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "list members")
}

func TestAddMember_Execute(t *testing.T) {
	// Setup
	gw := &testutil.MockMemberGateway{}
	uc := NewAddMember(gw, nil)

	// Execute
	out, err := uc.Execute(context.Background(), AddMemberInput{ProjectID: "1", UserID: "0042"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProgrammer, out.Member.Role)
	assert.Equal(t, domain.EntityID("42"), out.Member.UserID)
	require.Len(t, gw.Added, 1)
	assert.Equal(t, domain.EntityID("42"), gw.Added[0].UserID)
}

func TestAddMember_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		in      AddMemberInput
		wantErr error
	}{
		{name: "no project", in: AddMemberInput{UserID: "1"}, wantErr: domain.ErrNoProject},
		{name: "no user", in: AddMemberInput{ProjectID: "1"}, wantErr: domain.ErrInvalidID},
		{name: "bad role", in: AddMemberInput{ProjectID: "1", UserID: "2", Role: "INTERN"}, wantErr: domain.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &testutil.MockMemberGateway{}

			_, err := NewAddMember(gw, nil).Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, gw.Added)
		})
	}
}
