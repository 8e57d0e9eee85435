package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seinn09/digforweb/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// CaseService is the single gate in front of the repository: every
// operation authenticates, consults the permission policy once, validates,
// and writes an audit row for mutations.
type CaseService struct {
	repo domain.CaseRepository
}

func NewCaseService(repo domain.CaseRepository) *CaseService {
	return &CaseService{repo: repo}
}

// BootstrapOfficer creates the initial petugas account when the users
// table is empty, so a fresh install is immediately usable.
func (s *CaseService) BootstrapOfficer(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return errors.New("bootstrap officer email and password are required")
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	u, err := s.createUser(ctx, name, email, password, domain.RolePetugas)
	if err != nil {
		return err
	}

	return s.repo.CreateAuditLog(ctx, domain.AuditLog{ActorUserID: &u.ID, Action: "auth.bootstrap_officer", TargetType: "user", TargetID: &u.ID, Metadata: "initial officer created"})
}

// RegisterPetugas creates an officer account and logs it in, returning a
// fresh API token.
func (s *CaseService) RegisterPetugas(ctx context.Context, name, email, password string) (domain.User, string, error) {
	return s.register(ctx, name, email, password, domain.RolePetugas)
}

// RegisterViewer creates a read-only account and logs it in.
func (s *CaseService) RegisterViewer(ctx context.Context, name, email, password string) (domain.User, string, error) {
	return s.register(ctx, name, email, password, domain.RoleViewer)
}

func (s *CaseService) register(ctx context.Context, name, email, password, role string) (domain.User, string, error) {
	u, err := s.createUser(ctx, name, email, password, role)
	if err != nil {
		return domain.User{}, "", err
	}
	token, err := s.issueAPIToken(ctx, u.ID, "register")
	if err != nil {
		return domain.User{}, "", err
	}
	_ = s.repo.CreateAuditLog(ctx, domain.AuditLog{ActorUserID: &u.ID, Action: "auth.register." + role, TargetType: "user", TargetID: &u.ID})
	return u, token, nil
}

func (s *CaseService) createUser(ctx context.Context, name, email, password, role string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, domain.Invalid("name", "is required")
	}
	if strings.TrimSpace(email) == "" {
		return domain.User{}, domain.Invalid("email", "is required")
	}
	if strings.TrimSpace(password) == "" {
		return domain.User{}, domain.Invalid("password", "is required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.repo.CreateUser(ctx, domain.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
	})
}

// Login authenticates with email/password and issues a bearer API token.
func (s *CaseService) Login(ctx context.Context, email, password, tokenName string) (domain.User, string, error) {
	u, err := s.authenticateEmailPassword(ctx, email, password)
	if err != nil {
		return domain.User{}, "", err
	}
	token, err := s.issueAPIToken(ctx, u.ID, defaultString(tokenName, "login"))
	if err != nil {
		return domain.User{}, "", err
	}
	_ = s.repo.CreateAuditLog(ctx, domain.AuditLog{ActorUserID: &u.ID, Action: "auth.login", TargetType: "user", TargetID: &u.ID})
	return u, token, nil
}

// LoginWithSession issues a cookie-backed session token instead.
func (s *CaseService) LoginWithSession(ctx context.Context, email, password string, ttl time.Duration) (domain.User, string, error) {
	u, err := s.authenticateEmailPassword(ctx, email, password)
	if err != nil {
		return domain.User{}, "", err
	}

	plain, hash, err := newTokenPair()
	if err != nil {
		return domain.User{}, "", err
	}
	_, err = s.repo.CreateSession(ctx, domain.AuthSession{
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return domain.User{}, "", err
	}
	_ = s.repo.CreateAuditLog(ctx, domain.AuditLog{ActorUserID: &u.ID, Action: "auth.login.session", TargetType: "user", TargetID: &u.ID})
	return u, plain, nil
}

// apiTokenTTL bounds the lifetime of a leaked bearer token; revoked
// earlier via LogoutBearer.
const apiTokenTTL = 30 * 24 * time.Hour

func (s *CaseService) issueAPIToken(ctx context.Context, userID uint, name string) (string, error) {
	plain, hash, err := newTokenPair()
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(apiTokenTTL)
	_, err = s.repo.CreateAPIToken(ctx, domain.APIToken{UserID: userID, Name: name, TokenHash: hash, ExpiresAt: &expires})
	if err != nil {
		return "", err
	}
	return plain, nil
}

func (s *CaseService) AuthenticateBearerToken(ctx context.Context, token string) (domain.Identity, error) {
	apit, err := s.repo.GetAPITokenByTokenHash(ctx, hashToken(token))
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if apit.ExpiresAt != nil && apit.ExpiresAt.Before(time.Now().UTC()) {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return s.identityByUserID(ctx, apit.UserID)
}

func (s *CaseService) AuthenticateSession(ctx context.Context, token string) (domain.Identity, error) {
	hash := hashToken(token)
	session, err := s.repo.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if session.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.repo.DeleteSessionByTokenHash(ctx, hash)
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return s.identityByUserID(ctx, session.UserID)
}

func (s *CaseService) LogoutSession(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.repo.DeleteSessionByTokenHash(ctx, hashToken(token))
}

// LogoutBearer revokes an API token so it stops authenticating before its
// expiry.
func (s *CaseService) LogoutBearer(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.repo.DeleteAPITokenByTokenHash(ctx, hashToken(token))
}

// Victims

func (s *CaseService) ListVictims(ctx context.Context, identity domain.Identity) ([]domain.Victim, error) {
	if !identity.Permissions.CanView {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListVictims(ctx)
}

func (s *CaseService) GetVictim(ctx context.Context, identity domain.Identity, id uint) (domain.Victim, error) {
	if !identity.Permissions.CanView {
		return domain.Victim{}, domain.ErrForbidden
	}
	return s.repo.GetVictimByID(ctx, id)
}

func (s *CaseService) CreateVictim(ctx context.Context, identity domain.Identity, input domain.Victim) (domain.Victim, error) {
	if !identity.Permissions.CanCreate {
		return domain.Victim{}, domain.ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return domain.Victim{}, domain.Invalid("nama", "is required")
	}
	v, err := s.repo.CreateVictim(ctx, input)
	if err != nil {
		return domain.Victim{}, err
	}
	s.writeAudit(ctx, identity, "victim.create", "victim", &v.ID, "")
	return v, nil
}

func (s *CaseService) UpdateVictim(ctx context.Context, identity domain.Identity, id uint, input domain.Victim) (domain.Victim, error) {
	if !identity.Permissions.CanUpdate {
		return domain.Victim{}, domain.ErrForbidden
	}
	current, err := s.repo.GetVictimByID(ctx, id)
	if err != nil {
		return domain.Victim{}, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return domain.Victim{}, domain.Invalid("nama", "is required")
	}
	input.ID = current.ID
	input.CreatedAt = current.CreatedAt
	v, err := s.repo.UpdateVictim(ctx, input)
	if err != nil {
		return domain.Victim{}, err
	}
	s.writeAudit(ctx, identity, "victim.update", "victim", &v.ID, "")
	return v, nil
}

func (s *CaseService) DeleteVictim(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.Permissions.CanDelete {
		return domain.ErrForbidden
	}
	if _, err := s.repo.GetVictimByID(ctx, id); err != nil {
		return err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return err
	}
	plan := domain.CascadeFromVictim(snap, id)
	if err := s.repo.DeleteCascade(ctx, plan); err != nil {
		return err
	}
	s.writeAudit(ctx, identity, "victim.delete", "victim", &id, cascadeSummary(plan))
	return nil
}

// Cases

func (s *CaseService) ListCases(ctx context.Context, identity domain.Identity) ([]domain.Case, error) {
	if !identity.Permissions.CanView {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListCases(ctx)
}

func (s *CaseService) GetCase(ctx context.Context, identity domain.Identity, id uint) (domain.Case, error) {
	if !identity.Permissions.CanView {
		return domain.Case{}, domain.ErrForbidden
	}
	return s.repo.GetCaseByID(ctx, id)
}

func (s *CaseService) CreateCase(ctx context.Context, identity domain.Identity, input domain.Case) (domain.Case, error) {
	if !identity.Permissions.CanCreate {
		return domain.Case{}, domain.ErrForbidden
	}
	if err := s.validateCase(ctx, input); err != nil {
		return domain.Case{}, err
	}
	input.Status = defaultString(input.Status, "pending")
	c, err := s.repo.CreateCase(ctx, input)
	if err != nil {
		return domain.Case{}, err
	}
	s.writeAudit(ctx, identity, "case.create", "case", &c.ID, "")
	return c, nil
}

func (s *CaseService) UpdateCase(ctx context.Context, identity domain.Identity, id uint, input domain.Case) (domain.Case, error) {
	if !identity.Permissions.CanUpdate {
		return domain.Case{}, domain.ErrForbidden
	}
	current, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return domain.Case{}, err
	}
	if err := s.validateCase(ctx, input); err != nil {
		return domain.Case{}, err
	}
	input.ID = current.ID
	input.CreatedAt = current.CreatedAt
	input.Status = defaultString(input.Status, current.Status)
	c, err := s.repo.UpdateCase(ctx, input)
	if err != nil {
		return domain.Case{}, err
	}
	s.writeAudit(ctx, identity, "case.update", "case", &c.ID, "")
	return c, nil
}

func (s *CaseService) validateCase(ctx context.Context, input domain.Case) error {
	if input.VictimID == 0 {
		return domain.Invalid("korban_id", "is required")
	}
	if _, err := s.repo.GetVictimByID(ctx, input.VictimID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("korban_id", "does not reference an existing victim")
		}
		return err
	}
	if strings.TrimSpace(input.CaseType) == "" {
		return domain.Invalid("jenis_kasus", "is required")
	}
	return nil
}

func (s *CaseService) DeleteCase(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.Permissions.CanDelete {
		return domain.ErrForbidden
	}
	if _, err := s.repo.GetCaseByID(ctx, id); err != nil {
		return err
	}
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return err
	}
	plan := domain.CascadeFromCase(snap, id)
	if err := s.repo.DeleteCascade(ctx, plan); err != nil {
		return err
	}
	s.writeAudit(ctx, identity, "case.delete", "case", &id, cascadeSummary(plan))
	return nil
}

// Evidence

func (s *CaseService) ListEvidence(ctx context.Context, identity domain.Identity) ([]domain.Evidence, error) {
	if !identity.Permissions.CanView {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListEvidence(ctx)
}

func (s *CaseService) GetEvidence(ctx context.Context, identity domain.Identity, id uint) (domain.Evidence, error) {
	if !identity.Permissions.CanView {
		return domain.Evidence{}, domain.ErrForbidden
	}
	return s.repo.GetEvidenceByID(ctx, id)
}

func (s *CaseService) CreateEvidence(ctx context.Context, identity domain.Identity, input domain.Evidence) (domain.Evidence, error) {
	if !identity.Permissions.CanCreate {
		return domain.Evidence{}, domain.ErrForbidden
	}
	if err := s.validateEvidence(ctx, input); err != nil {
		return domain.Evidence{}, err
	}
	e, err := s.repo.CreateEvidence(ctx, input)
	if err != nil {
		return domain.Evidence{}, err
	}
	s.writeAudit(ctx, identity, "evidence.create", "evidence", &e.ID, "")
	return e, nil
}

func (s *CaseService) UpdateEvidence(ctx context.Context, identity domain.Identity, id uint, input domain.Evidence) (domain.Evidence, error) {
	if !identity.Permissions.CanUpdate {
		return domain.Evidence{}, domain.ErrForbidden
	}
	current, err := s.repo.GetEvidenceByID(ctx, id)
	if err != nil {
		return domain.Evidence{}, err
	}
	if err := s.validateEvidence(ctx, input); err != nil {
		return domain.Evidence{}, err
	}
	input.ID = current.ID
	input.CreatedAt = current.CreatedAt
	e, err := s.repo.UpdateEvidence(ctx, input)
	if err != nil {
		return domain.Evidence{}, err
	}
	s.writeAudit(ctx, identity, "evidence.update", "evidence", &e.ID, "")
	return e, nil
}

func (s *CaseService) validateEvidence(ctx context.Context, input domain.Evidence) error {
	if input.CaseID == 0 {
		return domain.Invalid("case_id", "is required")
	}
	if _, err := s.repo.GetCaseByID(ctx, input.CaseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("case_id", "does not reference an existing case")
		}
		return err
	}
	if strings.TrimSpace(input.EvidenceType) == "" {
		return domain.Invalid("jenis_bukti", "is required")
	}
	if strings.TrimSpace(input.StorageLocation) == "" {
		return domain.Invalid("lokasi_penyimpanan", "is required")
	}
	return nil
}

func (s *CaseService) DeleteEvidence(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.Permissions.CanDelete {
		return domain.ErrForbidden
	}
	if _, err := s.repo.GetEvidenceByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteEvidenceByID(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, identity, "evidence.delete", "evidence", &id, "")
	return nil
}

// Forensic actions

func (s *CaseService) ListActions(ctx context.Context, identity domain.Identity) ([]domain.ForensicAction, error) {
	if !identity.Permissions.CanView {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListActions(ctx)
}

func (s *CaseService) GetAction(ctx context.Context, identity domain.Identity, id uint) (domain.ForensicAction, error) {
	if !identity.Permissions.CanView {
		return domain.ForensicAction{}, domain.ErrForbidden
	}
	return s.repo.GetActionByID(ctx, id)
}

func (s *CaseService) CreateAction(ctx context.Context, identity domain.Identity, input domain.ForensicAction) (domain.ForensicAction, error) {
	if !identity.Permissions.CanCreate {
		return domain.ForensicAction{}, domain.ErrForbidden
	}
	normalized, err := s.validateAction(ctx, input)
	if err != nil {
		return domain.ForensicAction{}, err
	}
	a, err := s.repo.CreateAction(ctx, normalized)
	if err != nil {
		return domain.ForensicAction{}, err
	}
	s.writeAudit(ctx, identity, "action.create", "action", &a.ID, "")
	return a, nil
}

func (s *CaseService) UpdateAction(ctx context.Context, identity domain.Identity, id uint, input domain.ForensicAction) (domain.ForensicAction, error) {
	if !identity.Permissions.CanUpdate {
		return domain.ForensicAction{}, domain.ErrForbidden
	}
	current, err := s.repo.GetActionByID(ctx, id)
	if err != nil {
		return domain.ForensicAction{}, err
	}
	normalized, err := s.validateAction(ctx, input)
	if err != nil {
		return domain.ForensicAction{}, err
	}
	normalized.ID = current.ID
	normalized.CreatedAt = current.CreatedAt
	a, err := s.repo.UpdateAction(ctx, normalized)
	if err != nil {
		return domain.ForensicAction{}, err
	}
	s.writeAudit(ctx, identity, "action.update", "action", &a.ID, "")
	return a, nil
}

func (s *CaseService) validateAction(ctx context.Context, input domain.ForensicAction) (domain.ForensicAction, error) {
	if input.CaseID == 0 {
		return domain.ForensicAction{}, domain.Invalid("case_id", "is required")
	}
	if _, err := s.repo.GetCaseByID(ctx, input.CaseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ForensicAction{}, domain.Invalid("case_id", "does not reference an existing case")
		}
		return domain.ForensicAction{}, err
	}

	input.Stage = strings.ToLower(strings.TrimSpace(input.Stage))
	if !contains(domain.ForensicStages(), input.Stage) {
		return domain.ForensicAction{}, domain.Invalid("tahap_forensik", "must be one of "+strings.Join(domain.ForensicStages(), ", "))
	}

	input.Status = strings.ToLower(strings.TrimSpace(defaultString(input.Status, domain.ActionPending)))
	if !contains(domain.ActionStatuses(), input.Status) {
		return domain.ForensicAction{}, domain.Invalid("status_tindakan", "must be one of "+strings.Join(domain.ActionStatuses(), ", "))
	}

	return input, nil
}

func (s *CaseService) DeleteAction(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.Permissions.CanDelete {
		return domain.ErrForbidden
	}
	if _, err := s.repo.GetActionByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteActionByID(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, identity, "action.delete", "action", &id, "")
	return nil
}

// Dashboard and audit

func (s *CaseService) Stats(ctx context.Context, identity domain.Identity) (domain.Stats, error) {
	if !identity.Permissions.CanView {
		return domain.Stats{}, domain.ErrForbidden
	}
	return s.repo.CountStats(ctx)
}

func (s *CaseService) ListAuditLogs(ctx context.Context, identity domain.Identity, limit int) ([]domain.AuditRecord, error) {
	if !identity.Permissions.CanView {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 200
	}
	if limit > 2000 {
		limit = 2000
	}
	return s.repo.ListAuditLogs(ctx, limit)
}

func (s *CaseService) writeAudit(ctx context.Context, identity domain.Identity, action, targetType string, targetID *uint, metadata string) {
	actor := identity.User.ID
	_ = s.repo.CreateAuditLog(ctx, domain.AuditLog{
		ActorUserID: &actor,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Metadata:    metadata,
	})
}

func (s *CaseService) authenticateEmailPassword(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	return u, nil
}

func (s *CaseService) identityByUserID(ctx context.Context, userID uint) (domain.Identity, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return domain.Identity{User: u, Permissions: domain.PermissionsFor(u.Role)}, nil
}

func cascadeSummary(plan domain.CascadePlan) string {
	return fmt.Sprintf("cascade removed %d cases, %d evidence, %d actions", len(plan.CaseIDs), len(plan.EvidenceIDs), len(plan.ActionIDs))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func newTokenPair() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	plain := base64.RawURLEncoding.EncodeToString(raw)
	return plain, hashToken(plain), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", sum[:])
}

func defaultString(input, fallback string) string {
	if strings.TrimSpace(input) == "" {
		return fallback
	}
	return input
}

func contains(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
