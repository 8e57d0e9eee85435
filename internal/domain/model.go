package domain

import "time"

// Role values recognized by the permission policy. Petugas is the
// investigating officer role; viewers get read-only access.
const (
	RolePetugas = "petugas"
	RoleViewer  = "viewer"
)

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Victim is the root of the relational hierarchy. The report date is kept
// as the user-entered string; only CreatedAt/UpdatedAt are server-assigned.
type Victim struct {
	ID                uint
	Name              string
	Contact           string
	Location          string
	ReportDate        string
	ReportDescription string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Case struct {
	ID           uint
	VictimID     uint
	CaseType     string
	IncidentDate string
	Summary      string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Evidence struct {
	ID              uint
	CaseID          uint
	EvidenceType    string
	StorageLocation string
	HashValue       string
	CollectionTime  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Forensic stages follow the standard investigation sequence. Stage and
// status on actions are validated against these vocabularies; case status
// stays free text.
const (
	StageIdentification = "identification"
	StagePreservation   = "preservation"
	StageCollection     = "collection"
	StageExamination    = "examination"
	StageAnalysis       = "analysis"
	StageDocumentation  = "documentation"
	StagePresentation   = "presentation"
)

const (
	ActionPending    = "pending"
	ActionInProgress = "in-progress"
	ActionCompleted  = "completed"
)

func ForensicStages() []string {
	return []string{
		StageIdentification,
		StagePreservation,
		StageCollection,
		StageExamination,
		StageAnalysis,
		StageDocumentation,
		StagePresentation,
	}
}

func ActionStatuses() []string {
	return []string{ActionPending, ActionInProgress, ActionCompleted}
}

type ForensicAction struct {
	ID             uint
	CaseID         uint
	Stage          string
	Description    string
	PersonInCharge string
	ExecutionTime  string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AuthSession struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type APIToken struct {
	ID        uint
	UserID    uint
	Name      string
	TokenHash string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

type AuditLog struct {
	ID          uint
	ActorUserID *uint
	Action      string
	TargetType  string
	TargetID    *uint
	Metadata    string
	CreatedAt   time.Time
}

type AuditRecord struct {
	ID             uint
	ActorUserID    *uint
	ActorUserEmail string
	Action         string
	TargetType     string
	TargetID       *uint
	Metadata       string
	CreatedAt      time.Time
}

// Identity is an authenticated user plus the permissions derived from
// their role. Transports attach it to request contexts.
type Identity struct {
	User        User
	Permissions Permissions
}

// Stats backs the dashboard counters.
type Stats struct {
	Victims  int64
	Cases    int64
	Evidence int64
	Actions  int64
}
