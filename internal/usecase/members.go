// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListMembersInput contains the project to list.
type ListMembersInput struct {
	ProjectID domain.EntityID
}

// ListMembersOutput contains the members.
type ListMembersOutput struct {
	Members []domain.ProjectMember
}

// ListMembers lists a project's members.
type ListMembers struct {
	members domain.MemberGateway
}

// NewListMembers creates a new ListMembers use case.
func NewListMembers(members domain.MemberGateway) *ListMembers {
	return &ListMembers{members: members}
}

// Execute lists the members.
func (uc *ListMembers) Execute(ctx context.Context, in ListMembersInput) (*ListMembersOutput, error) {
	if in.ProjectID.IsZero() {
		return nil, domain.ErrNoProject
	}
	members, err := uc.members.ListMembers(ctx, in.ProjectID.Canonical())
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return &ListMembersOutput{Members: members}, nil
}

// AddMemberInput contains the parameters for adding a member.
type AddMemberInput struct {
	ProjectID domain.EntityID
	UserID    domain.EntityID
	Role      domain.MemberRole // Empty = PROGRAMMER
}

// AddMemberOutput contains the new membership.
type AddMemberOutput struct {
	Member domain.ProjectMember
}

// AddMember adds a user to a project.
type AddMember struct {
	members domain.MemberGateway
	logger  domain.Logger
}

// NewAddMember creates a new AddMember use case.
func NewAddMember(members domain.MemberGateway, logger domain.Logger) *AddMember {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &AddMember{members: members, logger: logger}
}

// Execute adds the member.
func (uc *AddMember) Execute(ctx context.Context, in AddMemberInput) (*AddMemberOutput, error) {
	if in.ProjectID.IsZero() {
		return nil, domain.ErrNoProject
	}
	req := domain.MemberCreate{UserID: in.UserID.Canonical(), Role: in.Role}
	if req.Role == "" {
		req.Role = domain.RoleProgrammer
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	projectID := in.ProjectID.Canonical()
	member, err := uc.members.AddMember(ctx, projectID, req)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	uc.logger.Info(projectID, "members", fmt.Sprintf("added user %s as %s", req.UserID, req.Role))
	return &AddMemberOutput{Member: *member}, nil
}
