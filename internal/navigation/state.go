// Package navigation models the UI's page and sub-view state machine.
// Browsers (the TUI, and any future front end) drive it instead of
// keeping their own ad-hoc page state.
package navigation

type Page string

const (
	PageDashboard Page = "dashboard"
	PageVictims   Page = "victims"
	PageCases     Page = "cases"
	PageEvidence  Page = "evidence"
	PageActions   Page = "actions"
)

type SubView string

const (
	SubViewList   SubView = "list"
	SubViewDetail SubView = "detail"
	SubViewCreate SubView = "create"
	SubViewEdit   SubView = "edit"
)

// State tracks which page is active and which record, if any, is open
// on it. SelectedID is only meaningful for detail and edit sub-views.
type State struct {
	Page       Page
	SubView    SubView
	SelectedID uint
}

func NewState() State {
	return State{Page: PageDashboard, SubView: SubViewList}
}

// GoTo switches pages. Any open detail, form, or selection on the old
// page is discarded.
func (s State) GoTo(page Page) State {
	return State{Page: page, SubView: SubViewList}
}

func (s State) OpenDetail(id uint) State {
	s.SubView = SubViewDetail
	s.SelectedID = id
	return s
}

func (s State) OpenCreate() State {
	s.SubView = SubViewCreate
	s.SelectedID = 0
	return s
}

func (s State) OpenEdit(id uint) State {
	s.SubView = SubViewEdit
	s.SelectedID = id
	return s
}

// Back returns to the page's list from any sub-view.
func (s State) Back() State {
	s.SubView = SubViewList
	s.SelectedID = 0
	return s
}

// Resolve checks the selection against the ids that still exist. When
// the selected record is gone (deleted by another user, or swept by a
// cascade) the state falls back to the list instead of pointing at
// nothing.
func (s State) Resolve(existingIDs []uint) State {
	if s.SubView != SubViewDetail && s.SubView != SubViewEdit {
		return s
	}
	for _, id := range existingIDs {
		if id == s.SelectedID {
			return s
		}
	}
	return s.Back()
}
