package domain

import "testing"

func buildSnapshot() Snapshot {
	return Snapshot{
		Victims: []Victim{{ID: 1, Name: "John Anderson"}, {ID: 2, Name: "Sarah Mitchell"}},
		Cases: []Case{
			{ID: 1, VictimID: 1, CaseType: "Email Compromise"},
			{ID: 2, VictimID: 1, CaseType: "Data Theft"},
			{ID: 3, VictimID: 2, CaseType: "Device Theft"},
		},
		Evidence: []Evidence{
			{ID: 1, CaseID: 1, EvidenceType: "Email Logs"},
			{ID: 2, CaseID: 2, EvidenceType: "Disk Image"},
			{ID: 3, CaseID: 3, EvidenceType: "SIM Card"},
		},
		Actions: []ForensicAction{
			{ID: 1, CaseID: 1, Stage: StageIdentification},
			{ID: 2, CaseID: 3, Stage: StageCollection},
		},
	}
}

func TestCascadeFromVictimCollectsTransitiveClosure(t *testing.T) {
	plan := CascadeFromVictim(buildSnapshot(), 1)

	if len(plan.VictimIDs) != 1 || plan.VictimIDs[0] != 1 {
		t.Fatalf("expected victim 1 in plan, got %v", plan.VictimIDs)
	}
	if len(plan.CaseIDs) != 2 {
		t.Fatalf("expected cases 1 and 2, got %v", plan.CaseIDs)
	}
	if len(plan.EvidenceIDs) != 2 {
		t.Fatalf("expected evidence 1 and 2, got %v", plan.EvidenceIDs)
	}
	if len(plan.ActionIDs) != 1 || plan.ActionIDs[0] != 1 {
		t.Fatalf("expected action 1, got %v", plan.ActionIDs)
	}

	for _, id := range plan.CaseIDs {
		if id == 3 {
			t.Fatalf("case 3 belongs to another victim and must not cascade")
		}
	}
	for _, id := range plan.EvidenceIDs {
		if id == 3 {
			t.Fatalf("evidence 3 belongs to another victim's case")
		}
	}
}

func TestCascadeFromCaseSparesVictimAndSiblings(t *testing.T) {
	plan := CascadeFromCase(buildSnapshot(), 1)

	if len(plan.VictimIDs) != 0 {
		t.Fatalf("case delete must not remove the victim, got %v", plan.VictimIDs)
	}
	if len(plan.CaseIDs) != 1 || plan.CaseIDs[0] != 1 {
		t.Fatalf("expected only case 1, got %v", plan.CaseIDs)
	}
	if len(plan.EvidenceIDs) != 1 || plan.EvidenceIDs[0] != 1 {
		t.Fatalf("expected only evidence 1, got %v", plan.EvidenceIDs)
	}
	if len(plan.ActionIDs) != 1 || plan.ActionIDs[0] != 1 {
		t.Fatalf("expected only action 1, got %v", plan.ActionIDs)
	}
}

func TestCascadeFromCaseWithoutDependentsIsJustTheCase(t *testing.T) {
	snap := Snapshot{Cases: []Case{{ID: 9, VictimID: 1}}}
	plan := CascadeFromCase(snap, 9)

	if len(plan.CaseIDs) != 1 || plan.CaseIDs[0] != 9 {
		t.Fatalf("expected case 9, got %v", plan.CaseIDs)
	}
	if len(plan.EvidenceIDs) != 0 || len(plan.ActionIDs) != 0 {
		t.Fatalf("empty dependent sets expected, got %v / %v", plan.EvidenceIDs, plan.ActionIDs)
	}
}

func TestCascadePlanEmpty(t *testing.T) {
	if !(CascadePlan{}).Empty() {
		t.Fatalf("zero plan should be empty")
	}
	if (CascadePlan{CaseIDs: []uint{1}}).Empty() {
		t.Fatalf("plan with a case is not empty")
	}
}
