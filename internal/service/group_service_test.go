package service

import (
	"context"
	"errors"
	"testing"

	"github.com/splitledger/splitledger/internal/money"
)

func TestGroupService(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	t.Run("creator is always a member", func(t *testing.T) {
		group, err := svc.Create(ctx, "alice", "Ski trip", "usd", []string{"bob", "carol"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if group.Currency != "USD" {
			t.Errorf("Currency = %s, want USD (normalized)", group.Currency)
		}
		if !group.HasMember("alice") {
			t.Errorf("creator missing from members: %v", group.Members)
		}
		if len(group.Members) != 3 {
			t.Errorf("got %d members, want 3", len(group.Members))
		}
	})

	t.Run("bad currency is rejected", func(t *testing.T) {
		if _, err := svc.Create(ctx, "alice", "Bad", "US", nil); !errors.Is(err, money.ErrBadCurrency) {
			t.Errorf("Create error = %v, want ErrBadCurrency", err)
		}
	})

	t.Run("membership gates reads and member adds", func(t *testing.T) {
		group, err := svc.Create(ctx, "alice", "Flat", "USD", []string{"alice", "bob"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if _, err := svc.Get(ctx, "mallory", group.ID); !errors.Is(err, ErrMemberNotInGroup) {
			t.Errorf("Get as outsider = %v, want ErrMemberNotInGroup", err)
		}
		if _, err := svc.AddMembers(ctx, "mallory", group.ID, []string{"mallory"}); !errors.Is(err, ErrMemberNotInGroup) {
			t.Errorf("AddMembers as outsider = %v, want ErrMemberNotInGroup", err)
		}

		updated, err := svc.AddMembers(ctx, "bob", group.ID, []string{"carol"})
		if err != nil {
			t.Fatalf("AddMembers failed: %v", err)
		}
		if !updated.HasMember("carol") {
			t.Errorf("carol missing after add: %v", updated.Members)
		}
	})

	t.Run("List returns only the user's groups", func(t *testing.T) {
		if _, err := svc.Create(ctx, "dave", "Solo", "USD", nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		groups, err := svc.List(ctx, "dave")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(groups) != 1 || groups[0].Name != "Solo" {
			t.Errorf("List = %+v, want just Solo", groups)
		}
	})
}
