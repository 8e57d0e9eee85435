package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/seinn09/digforweb/internal/domain"
)

func newTestRepo(t *testing.T) (*CaseRepository, context.Context) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "digforweb_test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewCaseRepository(db), ctx
}

func TestVictimCascadeRemovesWholeSubtree(t *testing.T) {
	repo, ctx := newTestRepo(t)

	anderson, err := repo.CreateVictim(ctx, domain.Victim{Name: "John Anderson", Contact: "+62 811 000 111"})
	if err != nil {
		t.Fatalf("create victim: %v", err)
	}
	mitchell, _ := repo.CreateVictim(ctx, domain.Victim{Name: "Sarah Mitchell"})

	caseA, _ := repo.CreateCase(ctx, domain.Case{VictimID: anderson.ID, CaseType: "Email Compromise"})
	caseB, _ := repo.CreateCase(ctx, domain.Case{VictimID: anderson.ID, CaseType: "Data Theft"})
	caseC, _ := repo.CreateCase(ctx, domain.Case{VictimID: mitchell.ID, CaseType: "Device Theft"})

	_, _ = repo.CreateEvidence(ctx, domain.Evidence{CaseID: caseA.ID, EvidenceType: "Email Logs", StorageLocation: "Locker A-3"})
	_, _ = repo.CreateEvidence(ctx, domain.Evidence{CaseID: caseB.ID, EvidenceType: "Disk Image", StorageLocation: "Vault 2"})
	keptEvidence, _ := repo.CreateEvidence(ctx, domain.Evidence{CaseID: caseC.ID, EvidenceType: "SIM Card", StorageLocation: "Locker B-1"})

	_, _ = repo.CreateAction(ctx, domain.ForensicAction{CaseID: caseA.ID, Stage: domain.StageIdentification})
	keptAction, _ := repo.CreateAction(ctx, domain.ForensicAction{CaseID: caseC.ID, Stage: domain.StageCollection})

	snap, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	plan := domain.CascadeFromVictim(snap, anderson.ID)
	if err := repo.DeleteCascade(ctx, plan); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := repo.GetVictimByID(ctx, anderson.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("victim should be gone, got %v", err)
	}
	if _, err := repo.GetCaseByID(ctx, caseA.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("case A should be gone, got %v", err)
	}
	if _, err := repo.GetCaseByID(ctx, caseB.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("case B should be gone, got %v", err)
	}

	if _, err := repo.GetVictimByID(ctx, mitchell.ID); err != nil {
		t.Fatalf("other victim must survive: %v", err)
	}
	if _, err := repo.GetCaseByID(ctx, caseC.ID); err != nil {
		t.Fatalf("other victim's case must survive: %v", err)
	}
	if _, err := repo.GetEvidenceByID(ctx, keptEvidence.ID); err != nil {
		t.Fatalf("other victim's evidence must survive: %v", err)
	}
	if _, err := repo.GetActionByID(ctx, keptAction.ID); err != nil {
		t.Fatalf("other victim's action must survive: %v", err)
	}

	stats, err := repo.CountStats(ctx)
	if err != nil {
		t.Fatalf("count stats: %v", err)
	}
	if stats.Victims != 1 || stats.Cases != 1 || stats.Evidence != 1 || stats.Actions != 1 {
		t.Fatalf("unexpected counts after cascade: %+v", stats)
	}
}

func TestCaseCascadeSparesVictim(t *testing.T) {
	repo, ctx := newTestRepo(t)

	victim, _ := repo.CreateVictim(ctx, domain.Victim{Name: "Robert Chen"})
	target, _ := repo.CreateCase(ctx, domain.Case{VictimID: victim.ID, CaseType: "Ransomware"})
	sibling, _ := repo.CreateCase(ctx, domain.Case{VictimID: victim.ID, CaseType: "Phishing"})
	ev, _ := repo.CreateEvidence(ctx, domain.Evidence{CaseID: target.ID, EvidenceType: "Memory Dump", StorageLocation: "Vault 1"})

	snap, _ := repo.Snapshot(ctx)
	if err := repo.DeleteCascade(ctx, domain.CascadeFromCase(snap, target.ID)); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := repo.GetVictimByID(ctx, victim.ID); err != nil {
		t.Fatalf("victim must survive a case delete: %v", err)
	}
	if _, err := repo.GetCaseByID(ctx, sibling.ID); err != nil {
		t.Fatalf("sibling case must survive: %v", err)
	}
	if _, err := repo.GetEvidenceByID(ctx, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("target case's evidence should be gone, got %v", err)
	}
}

func TestListsReturnRowsInInsertionOrder(t *testing.T) {
	repo, ctx := newTestRepo(t)

	first, _ := repo.CreateVictim(ctx, domain.Victim{Name: "John Anderson"})
	second, _ := repo.CreateVictim(ctx, domain.Victim{Name: "Sarah Mitchell"})
	third, _ := repo.CreateVictim(ctx, domain.Victim{Name: "Robert Chen"})

	victims, err := repo.ListVictims(ctx)
	if err != nil {
		t.Fatalf("list victims: %v", err)
	}
	if len(victims) != 3 {
		t.Fatalf("expected 3 victims, got %d", len(victims))
	}
	if victims[0].ID != first.ID || victims[1].ID != second.ID || victims[2].ID != third.ID {
		t.Fatalf("victims out of insertion order: %d, %d, %d", victims[0].ID, victims[1].ID, victims[2].ID)
	}

	older, _ := repo.CreateCase(ctx, domain.Case{VictimID: first.ID, CaseType: "Phishing"})
	newer, _ := repo.CreateCase(ctx, domain.Case{VictimID: second.ID, CaseType: "Ransomware"})

	cases, err := repo.ListCases(ctx)
	if err != nil {
		t.Fatalf("list cases: %v", err)
	}
	if len(cases) != 2 || cases[0].ID != older.ID || cases[1].ID != newer.ID {
		t.Fatalf("cases out of insertion order: %+v", cases)
	}
}

func TestDuplicateEmailIsAValidationError(t *testing.T) {
	repo, ctx := newTestRepo(t)

	if _, err := repo.CreateUser(ctx, domain.User{Name: "Dewi", Email: "dewi@forensic.test", PasswordHash: "x", Role: domain.RolePetugas}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := repo.CreateUser(ctx, domain.User{Name: "Dewi Again", Email: "Dewi@Forensic.Test", PasswordHash: "y", Role: domain.RoleViewer})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error for the duplicate email, got %v", err)
	}
}

func TestDeleteAbsentRowsReportNotFound(t *testing.T) {
	repo, ctx := newTestRepo(t)

	if err := repo.DeleteEvidenceByID(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for absent evidence, got %v", err)
	}
	if err := repo.DeleteActionByID(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for absent action, got %v", err)
	}
	if _, err := repo.GetVictimByID(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for absent victim, got %v", err)
	}
}

func TestUpdateRoundTripsFields(t *testing.T) {
	repo, ctx := newTestRepo(t)

	victim, _ := repo.CreateVictim(ctx, domain.Victim{Name: "Initial Name"})
	c, _ := repo.CreateCase(ctx, domain.Case{VictimID: victim.ID, CaseType: "Fraud"})
	if c.Status != "pending" {
		t.Fatalf("new case should default to pending, got %q", c.Status)
	}

	updated, err := repo.UpdateCase(ctx, domain.Case{ID: c.ID, VictimID: victim.ID, CaseType: "Fraud", IncidentDate: "2026-03-15", Summary: "wire transfer redirected", Status: "investigating"})
	if err != nil {
		t.Fatalf("update case: %v", err)
	}
	if updated.Status != "investigating" || updated.Summary != "wire transfer redirected" || updated.IncidentDate != "2026-03-15" {
		t.Fatalf("update did not round trip: %+v", updated)
	}

	a, err := repo.CreateAction(ctx, domain.ForensicAction{CaseID: c.ID, Stage: domain.StageAnalysis, PersonInCharge: "D. Pratama"})
	if err != nil {
		t.Fatalf("create action: %v", err)
	}
	got, err := repo.GetActionByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get action: %v", err)
	}
	if got.Stage != domain.StageAnalysis || got.PersonInCharge != "D. Pratama" || got.Status != "pending" {
		t.Fatalf("action fields wrong: %+v", got)
	}
}

func TestAuditLogJoinsActorEmail(t *testing.T) {
	repo, ctx := newTestRepo(t)

	u, err := repo.CreateUser(ctx, domain.User{Name: "Dewi", Email: "Dewi@Example.COM", PasswordHash: "x", Role: domain.RolePetugas})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "dewi@example.com" {
		t.Fatalf("email should be normalized, got %q", u.Email)
	}

	target := uint(42)
	if err := repo.CreateAuditLog(ctx, domain.AuditLog{ActorUserID: &u.ID, Action: "victim.delete", TargetType: "victim", TargetID: &target, Metadata: "cascade removed 2 cases, 2 evidence, 1 actions"}); err != nil {
		t.Fatalf("create audit log: %v", err)
	}

	logs, err := repo.ListAuditLogs(ctx, 10)
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one audit row, got %d", len(logs))
	}
	if logs[0].ActorUserEmail != "dewi@example.com" || logs[0].Action != "victim.delete" {
		t.Fatalf("audit row wrong: %+v", logs[0])
	}
}
