package navigation

import "testing"

func TestNewStateStartsOnDashboardList(t *testing.T) {
	s := NewState()
	if s.Page != PageDashboard || s.SubView != SubViewList || s.SelectedID != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}
}

func TestPageSwitchDiscardsSelection(t *testing.T) {
	s := NewState().GoTo(PageVictims).OpenDetail(7)
	if s.SubView != SubViewDetail || s.SelectedID != 7 {
		t.Fatalf("detail not opened: %+v", s)
	}

	s = s.GoTo(PageCases)
	if s.Page != PageCases || s.SubView != SubViewList || s.SelectedID != 0 {
		t.Fatalf("page switch must reset sub-view and selection: %+v", s)
	}
}

func TestBackAlwaysReturnsToList(t *testing.T) {
	for _, open := range []func(State) State{
		func(s State) State { return s.OpenDetail(3) },
		func(s State) State { return s.OpenCreate() },
		func(s State) State { return s.OpenEdit(3) },
	} {
		s := open(NewState().GoTo(PageEvidence)).Back()
		if s.Page != PageEvidence || s.SubView != SubViewList || s.SelectedID != 0 {
			t.Fatalf("back must land on the same page's list: %+v", s)
		}
	}
}

func TestResolveFallsBackWhenSelectionVanishes(t *testing.T) {
	s := NewState().GoTo(PageCases).OpenDetail(5).Resolve([]uint{1, 2, 3})
	if s.SubView != SubViewList || s.SelectedID != 0 {
		t.Fatalf("vanished selection should fall back to list: %+v", s)
	}

	s = NewState().GoTo(PageCases).OpenDetail(2).Resolve([]uint{1, 2, 3})
	if s.SubView != SubViewDetail || s.SelectedID != 2 {
		t.Fatalf("live selection must survive resolve: %+v", s)
	}

	s = NewState().GoTo(PageCases).OpenCreate().Resolve(nil)
	if s.SubView != SubViewCreate {
		t.Fatalf("create form has no selection to resolve: %+v", s)
	}
}
