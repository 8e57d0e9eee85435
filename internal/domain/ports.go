package domain

import "context"

type CaseRepository interface {
	CreateUser(ctx context.Context, value User) (User, error)
	CountUsers(ctx context.Context) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uint) (User, error)
	CreateSession(ctx context.Context, value AuthSession) (AuthSession, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (AuthSession, error)
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
	CreateAPIToken(ctx context.Context, value APIToken) (APIToken, error)
	GetAPITokenByTokenHash(ctx context.Context, tokenHash string) (APIToken, error)
	DeleteAPITokenByTokenHash(ctx context.Context, tokenHash string) error

	ListVictims(ctx context.Context) ([]Victim, error)
	GetVictimByID(ctx context.Context, id uint) (Victim, error)
	CreateVictim(ctx context.Context, value Victim) (Victim, error)
	UpdateVictim(ctx context.Context, value Victim) (Victim, error)

	ListCases(ctx context.Context) ([]Case, error)
	GetCaseByID(ctx context.Context, id uint) (Case, error)
	CreateCase(ctx context.Context, value Case) (Case, error)
	UpdateCase(ctx context.Context, value Case) (Case, error)

	ListEvidence(ctx context.Context) ([]Evidence, error)
	GetEvidenceByID(ctx context.Context, id uint) (Evidence, error)
	CreateEvidence(ctx context.Context, value Evidence) (Evidence, error)
	UpdateEvidence(ctx context.Context, value Evidence) (Evidence, error)

	ListActions(ctx context.Context) ([]ForensicAction, error)
	GetActionByID(ctx context.Context, id uint) (ForensicAction, error)
	CreateAction(ctx context.Context, value ForensicAction) (ForensicAction, error)
	UpdateAction(ctx context.Context, value ForensicAction) (ForensicAction, error)
	DeleteActionByID(ctx context.Context, id uint) error
	DeleteEvidenceByID(ctx context.Context, id uint) error

	// Snapshot feeds the cascade planner; DeleteCascade executes a plan in
	// one transaction.
	Snapshot(ctx context.Context) (Snapshot, error)
	DeleteCascade(ctx context.Context, plan CascadePlan) error

	CountStats(ctx context.Context) (Stats, error)

	CreateAuditLog(ctx context.Context, value AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]AuditRecord, error)
}
