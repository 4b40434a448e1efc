package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/database"
)

// memberUseCase implements MemberUseCase.
type memberUseCase struct {
	txManager      database.TxManager
	membershipRepo MembershipRepository
}

// UpdateMemberRole loads the target's active membership and applies CanModifyRole with
// the caller's resolved role. The read and the update share one transaction.
func (m *memberUseCase) UpdateMemberRole(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.UpdateMemberRoleInput,
) (*authzDomain.Membership, error) {
	if tenant == nil {
		return nil, authzDomain.ErrTenantContextMissing()
	}
	if !input.NewRole.IsValid() {
		return nil, authzDomain.ErrInvalidRole
	}

	var target *authzDomain.Membership
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		target, err = m.membershipRepo.GetActive(ctx, input.UserID, tenant.OrgID)
		if err != nil {
			return err
		}

		if !authzDomain.CanModifyRole(tenant.Role, target.Role, input.NewRole, target.IsOwner) {
			return authzDomain.ErrRoleChangeNotAllowed
		}

		target.UpdatedAt = time.Now().UTC()
		if err := m.membershipRepo.UpdateRole(ctx, target.ID, input.NewRole, target.UpdatedAt); err != nil {
			return err
		}
		target.Role = input.NewRole
		return nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// InviteMember creates an invited membership when CanInviteToRole allows it.
func (m *memberUseCase) InviteMember(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.InviteMemberInput,
) (*authzDomain.Membership, error) {
	if tenant == nil {
		return nil, authzDomain.ErrTenantContextMissing()
	}
	if !input.Role.IsValid() {
		return nil, authzDomain.ErrInvalidRole
	}
	if !authzDomain.CanInviteToRole(tenant.Role, input.Role) {
		return nil, authzDomain.ErrRoleChangeNotAllowed
	}

	now := time.Now().UTC()
	membership := &authzDomain.Membership{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: tenant.OrgID,
		UserID:         input.UserID,
		Role:           input.Role,
		IsOwner:        false,
		Status:         authzDomain.MembershipInvited,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		return m.membershipRepo.Create(ctx, membership)
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(txManager database.TxManager, membershipRepo MembershipRepository) MemberUseCase {
	return &memberUseCase{
		txManager:      txManager,
		membershipRepo: membershipRepo,
	}
}
