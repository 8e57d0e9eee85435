package domain

// Snapshot is the current state of the four collections, as needed to plan
// a cascade without touching storage.
type Snapshot struct {
	Victims  []Victim
	Cases    []Case
	Evidence []Evidence
	Actions  []ForensicAction
}

// CascadePlan lists everything a delete must remove. The repository
// executes a plan inside a single transaction: either the whole set goes
// or none of it does.
type CascadePlan struct {
	VictimIDs   []uint
	CaseIDs     []uint
	EvidenceIDs []uint
	ActionIDs   []uint
}

func (p CascadePlan) Empty() bool {
	return len(p.VictimIDs) == 0 && len(p.CaseIDs) == 0 && len(p.EvidenceIDs) == 0 && len(p.ActionIDs) == 0
}

// CascadeFromVictim walks the fixed FK hierarchy Victim -> Case ->
// {Evidence, ForensicAction} and returns the transitive set to remove.
// FKs only point up the hierarchy, so two levels is the whole closure.
func CascadeFromVictim(snap Snapshot, victimID uint) CascadePlan {
	plan := CascadePlan{VictimIDs: []uint{victimID}}
	caseSet := make(map[uint]struct{})
	for _, c := range snap.Cases {
		if c.VictimID == victimID {
			caseSet[c.ID] = struct{}{}
			plan.CaseIDs = append(plan.CaseIDs, c.ID)
		}
	}
	plan.EvidenceIDs, plan.ActionIDs = dependentsOf(snap, caseSet)
	return plan
}

// CascadeFromCase removes one case and its dependents. The victim and any
// sibling cases are untouched. A case with no dependents yields a plan
// containing only the case itself, which is not an error.
func CascadeFromCase(snap Snapshot, caseID uint) CascadePlan {
	plan := CascadePlan{CaseIDs: []uint{caseID}}
	caseSet := map[uint]struct{}{caseID: {}}
	plan.EvidenceIDs, plan.ActionIDs = dependentsOf(snap, caseSet)
	return plan
}

func dependentsOf(snap Snapshot, caseSet map[uint]struct{}) (evidenceIDs, actionIDs []uint) {
	for _, e := range snap.Evidence {
		if _, ok := caseSet[e.CaseID]; ok {
			evidenceIDs = append(evidenceIDs, e.ID)
		}
	}
	for _, a := range snap.Actions {
		if _, ok := caseSet[a.CaseID]; ok {
			actionIDs = append(actionIDs, a.ID)
		}
	}
	return evidenceIDs, actionIDs
}
