package application_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqliteadapter "github.com/seinn09/digforweb/internal/adapters/db/sqlite"
	"github.com/seinn09/digforweb/internal/application"
	"github.com/seinn09/digforweb/internal/domain"
)

func newTestService(t *testing.T) (*application.CaseService, domain.CaseRepository) {
	t.Helper()
	db, err := sqliteadapter.Open(filepath.Join(t.TempDir(), "service_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqliteadapter.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	repo := sqliteadapter.NewCaseRepository(db)
	return application.NewCaseService(repo), repo
}

// sha256Hex mirrors how the service stores credentials at rest so the
// test can plant a token row directly.
func sha256Hex(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TestBootstrapOfficerRunsOnce(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	if err := service.BootstrapOfficer(ctx, "Officer", "Boot@Example.com", "secret"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	// A second bootstrap against a non-empty users table is a no-op.
	if err := service.BootstrapOfficer(ctx, "Another", "other@example.com", "secret"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user after double bootstrap, got %d", count)
	}

	u, token, err := service.Login(ctx, "boot@example.com", "secret", "test")
	if err != nil {
		t.Fatalf("login as bootstrapped officer: %v", err)
	}
	if u.Role != domain.RolePetugas {
		t.Fatalf("bootstrapped user must be petugas, got %q", u.Role)
	}

	identity, err := service.AuthenticateBearerToken(ctx, token)
	if err != nil {
		t.Fatalf("authenticate bearer token: %v", err)
	}
	if !identity.Permissions.CanDelete {
		t.Fatal("petugas identity must carry delete permission")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, _, err := service.RegisterPetugas(ctx, "Officer", "p@example.com", "right"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := service.Login(ctx, "p@example.com", "wrong", "test"); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestExpiredCredentialsAreRejected(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	u, _, err := service.RegisterPetugas(ctx, "Officer", "p@example.com", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// A bearer token whose expiry has passed must not authenticate even
	// though the row still exists.
	past := time.Now().UTC().Add(-time.Hour)
	expired := "expired-token-plaintext"
	if _, err := repo.CreateAPIToken(ctx, domain.APIToken{
		UserID:    u.ID,
		Name:      "stale",
		TokenHash: sha256Hex(expired),
		ExpiresAt: &past,
	}); err != nil {
		t.Fatalf("create expired token: %v", err)
	}
	if _, err := service.AuthenticateBearerToken(ctx, expired); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}

	// Same for sessions: an expired session is rejected and removed.
	_, cookie, err := service.LoginWithSession(ctx, "p@example.com", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("session login: %v", err)
	}
	if _, err := service.AuthenticateSession(ctx, cookie); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for expired session, got %v", err)
	}
}

func TestBearerTokensExpireAndCanBeRevoked(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	_, token, err := service.RegisterPetugas(ctx, "Officer", "p@example.com", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Issued tokens always carry a deadline.
	apit, err := repo.GetAPITokenByTokenHash(ctx, sha256Hex(token))
	if err != nil {
		t.Fatalf("fetch token row: %v", err)
	}
	if apit.ExpiresAt == nil || !apit.ExpiresAt.After(time.Now().UTC()) {
		t.Fatalf("issued token must expire in the future, got %v", apit.ExpiresAt)
	}

	if _, err := service.AuthenticateBearerToken(ctx, token); err != nil {
		t.Fatalf("authenticate before logout: %v", err)
	}
	if err := service.LogoutBearer(ctx, token); err != nil {
		t.Fatalf("bearer logout: %v", err)
	}
	if _, err := service.AuthenticateBearerToken(ctx, token); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized after revocation, got %v", err)
	}
}

func TestSessionLogoutInvalidatesCookie(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, _, err := service.RegisterViewer(ctx, "Viewer", "v@example.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, cookie, err := service.LoginWithSession(ctx, "v@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("session login: %v", err)
	}
	if _, err := service.AuthenticateSession(ctx, cookie); err != nil {
		t.Fatalf("authenticate live session: %v", err)
	}

	if err := service.LogoutSession(ctx, cookie); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := service.AuthenticateSession(ctx, cookie); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestCascadeDeleteWritesAuditTrail(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, token, err := service.RegisterPetugas(ctx, "Officer", "p@example.com", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	identity, err := service.AuthenticateBearerToken(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	victim, err := service.CreateVictim(ctx, identity, domain.Victim{Name: "Siti"})
	if err != nil {
		t.Fatalf("create victim: %v", err)
	}
	kase, err := service.CreateCase(ctx, identity, domain.Case{VictimID: victim.ID, CaseType: "phishing"})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	if _, err := service.CreateEvidence(ctx, identity, domain.Evidence{CaseID: kase.ID, EvidenceType: "laptop", StorageLocation: "locker 3"}); err != nil {
		t.Fatalf("create evidence: %v", err)
	}
	if _, err := service.CreateAction(ctx, identity, domain.ForensicAction{CaseID: kase.ID, Stage: domain.StageCollection}); err != nil {
		t.Fatalf("create action: %v", err)
	}

	if err := service.DeleteVictim(ctx, identity, victim.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	logs, err := service.ListAuditLogs(ctx, identity, 0)
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	var found bool
	for _, l := range logs {
		if l.Action == "victim.delete" {
			found = true
			if !strings.Contains(l.Metadata, "1 cases, 1 evidence, 1 actions") {
				t.Fatalf("cascade summary missing from audit metadata: %q", l.Metadata)
			}
			if l.ActorUserEmail != "p@example.com" {
				t.Fatalf("audit row must name the acting officer, got %q", l.ActorUserEmail)
			}
		}
	}
	if !found {
		t.Fatal("victim.delete audit row not written")
	}
}

func TestViewerIsDeniedMutations(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, _, err := service.RegisterPetugas(ctx, "Officer", "p@example.com", "secret"); err != nil {
		t.Fatalf("register officer: %v", err)
	}
	_, token, err := service.RegisterViewer(ctx, "Viewer", "v@example.com", "secret")
	if err != nil {
		t.Fatalf("register viewer: %v", err)
	}
	viewer, err := service.AuthenticateBearerToken(ctx, token)
	if err != nil {
		t.Fatalf("authenticate viewer: %v", err)
	}

	if _, err := service.ListVictims(ctx, viewer); err != nil {
		t.Fatalf("viewer must be able to list: %v", err)
	}
	if _, err := service.CreateVictim(ctx, viewer, domain.Victim{Name: "Siti"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on create, got %v", err)
	}
	if err := service.DeleteVictim(ctx, viewer, 1); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}
