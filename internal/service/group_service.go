package service

import (
	"context"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// GroupService manages shared spaces and their member lists.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create creates a group with the given members. The creator is always a
// member, whether listed or not.
func (s *GroupService) Create(ctx context.Context, userID, name, currency string, members []string) (*models.Group, error) {
	currency = money.NormalizeCurrency(currency)
	if err := money.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	if !isParticipant(userID, members) {
		members = append([]string{userID}, members...)
	}

	group := &models.Group{
		Name:      name,
		Currency:  currency,
		Members:   members,
		CreatedBy: userID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// Get retrieves a group, restricted to its members.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrMemberNotInGroup
	}
	return group, nil
}

// List retrieves every group the user belongs to.
func (s *GroupService) List(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// AddMembers adds members to a group. Any existing member may add; duplicate
// adds are ignored.
func (s *GroupService) AddMembers(ctx context.Context, userID, groupID string, members []string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrMemberNotInGroup
	}

	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}
	slog.Info("Group members added", "group_id", groupID, "new_members", members)
	return s.store.GetGroup(ctx, groupID)
}
