package app

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/ports/secondary"
)

func newTestExecutor() (*StoreEffectExecutor, *fakeStore, *mockReorderer, *recordingSink) {
	store := newFakeStore(1, f(1), g(2, 10), g(3, 10), f(4))
	reorderer := &mockReorderer{}
	sink := &recordingSink{}
	return NewEffectExecutor(store, store, store, reorderer, sink), store, reorderer, sink
}

func TestExecute_RunsEffectsInOrder(t *testing.T) {
	ctx := context.Background()
	executor, store, _, _ := newTestExecutor()

	err := executor.Execute(ctx, []effects.Effect{
		effects.UngroupItemEffect{ItemID: 2},
		effects.MoveItemEffect{ItemID: 2, Index: 0},
		effects.NoEffect{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ungroupItem(2)", "moveItem(2, 0)"}
	if len(store.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, store.calls)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], store.calls[i])
		}
	}
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	executor, store, _, _ := newTestExecutor()
	store.failOn["ungroupItem"] = errors.New("gone")

	err := executor.Execute(ctx, []effects.Effect{
		effects.UngroupItemEffect{ItemID: 2},
		effects.MoveItemEffect{ItemID: 2, Index: 0},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.calls) != 1 {
		t.Errorf("expected execution to stop, got calls %v", store.calls)
	}
}

func TestExecute_MoveGroupRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantErr   bool
		wantCalls []string
	}{
		{
			name:      "succeeds first time",
			wantCalls: []string{"moveGroup(10, 0)"},
		},
		{
			name:      "retries one slot earlier",
			errs:      []error{secondary.ErrMiddleOfGroup},
			wantCalls: []string{"moveGroup(10, 3)", "moveGroup(10, 2)"},
		},
		{
			name:      "gives up after one retry",
			errs:      []error{secondary.ErrMiddleOfGroup, secondary.ErrMiddleOfGroup},
			wantErr:   true,
			wantCalls: []string{"moveGroup(10, 3)", "moveGroup(10, 2)"},
		},
		{
			name:      "other errors are not retried",
			errs:      []error{errors.New("boom")},
			wantErr:   true,
			wantCalls: []string{"moveGroup(10, 3)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			executor, store, _, _ := newTestExecutor()
			store.moveGroupErrs = tt.errs

			index := 3
			if tt.errs == nil {
				index = 0
			}
			err := executor.Execute(ctx, []effects.Effect{effects.MoveGroupEffect{GroupID: 10, Index: index}})
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(store.calls, tt.wantCalls) {
				t.Errorf("expected calls %v, got %v", tt.wantCalls, store.calls)
			}
		})
	}
}

func TestExecute_ResolvesCreatedWindowAndGroup(t *testing.T) {
	ctx := context.Background()
	executor, store, _, _ := newTestExecutor()

	err := executor.Execute(ctx, []effects.Effect{
		effects.CreateWindowEffect{},
		effects.MoveItemToWindowEffect{ItemID: 1, WindowID: effects.NewWindow},
		effects.MoveItemToWindowEffect{ItemID: 4, WindowID: effects.NewWindow},
		effects.GroupItemsEffect{ItemIDs: []int{1, 4}, GroupID: 0},
		effects.UpdateGroupEffect{GroupID: effects.NewGroup, Title: "docs", Color: "green"},
		effects.FocusWindowEffect{WindowID: effects.NewWindow},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.order(2); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("expected new window [1 4], got %v", got)
	}
	group, err := store.GetGroup(ctx, 101)
	if err != nil {
		t.Fatalf("expected group 101: %v", err)
	}
	if group.Title != "docs" || group.WindowID != 2 {
		t.Errorf("unexpected group %+v", group)
	}
	if store.focused != 2 {
		t.Errorf("expected window 2 focused, got %d", store.focused)
	}
}

func TestExecute_NewWindowWithoutCreate(t *testing.T) {
	ctx := context.Background()
	executor, store, _, _ := newTestExecutor()

	err := executor.Execute(ctx, []effects.Effect{effects.FocusWindowEffect{WindowID: effects.NewWindow}})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.calls) != 0 {
		t.Errorf("expected no calls, got %v", store.calls)
	}
}

func TestExecute_WorkspaceEffects(t *testing.T) {
	ctx := context.Background()
	executor, store, reorderer, sink := newTestExecutor()
	store.assigned["group:10"] = 7

	err := executor.Execute(ctx, []effects.Effect{
		effects.AssignWorkspaceEffect{Subject: effects.SubjectItem, ID: 1, WorkspaceID: 3},
		effects.AssignWorkspaceEffect{Subject: effects.SubjectGroup, ID: 10, WorkspaceID: 0},
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.ReorderByWorkspaceEffect{WindowID: 1},
			effects.LogEffect{Phase: "test.done", Fields: map[string]any{"ok": true}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.assigned["item:1"] != 3 {
		t.Errorf("expected item 1 in workspace 3, got %v", store.assigned)
	}
	if _, ok := store.assigned["group:10"]; ok {
		t.Error("expected group 10 assignment cleared")
	}
	if len(reorderer.scheduled) != 1 || reorderer.scheduled[0] != 1 {
		t.Errorf("expected reorder scheduled for window 1, got %v", reorderer.scheduled)
	}
	if !sink.has("test.done") {
		t.Error("expected log effect recorded")
	}
}
