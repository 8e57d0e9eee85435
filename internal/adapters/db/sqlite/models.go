package sqlite

import "time"

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

type SessionModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	TokenHash string `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (SessionModel) TableName() string { return "sessions" }

type APITokenModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	TokenHash string `gorm:"not null;uniqueIndex"`
	ExpiresAt *time.Time
	CreatedAt time.Time
}

func (APITokenModel) TableName() string { return "api_tokens" }

type VictimModel struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"not null;index"`
	Contact           string
	Location          string
	ReportDate        string
	ReportDescription string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (VictimModel) TableName() string { return "victims" }

type CaseModel struct {
	ID           uint   `gorm:"primaryKey"`
	VictimID     uint   `gorm:"not null;index"`
	CaseType     string `gorm:"not null"`
	IncidentDate string
	Summary      string
	Status       string `gorm:"not null;default:'pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CaseModel) TableName() string { return "cases" }

type EvidenceModel struct {
	ID              uint   `gorm:"primaryKey"`
	CaseID          uint   `gorm:"not null;index"`
	EvidenceType    string `gorm:"not null"`
	StorageLocation string `gorm:"not null"`
	HashValue       string
	CollectionTime  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (EvidenceModel) TableName() string { return "evidence" }

type ForensicActionModel struct {
	ID             uint   `gorm:"primaryKey"`
	CaseID         uint   `gorm:"not null;index"`
	Stage          string `gorm:"not null;index"`
	Description    string
	PersonInCharge string
	ExecutionTime  string
	Status         string `gorm:"not null;default:'pending'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ForensicActionModel) TableName() string { return "forensic_actions" }

type AuditLogModel struct {
	ID          uint `gorm:"primaryKey"`
	ActorUserID *uint
	Action      string `gorm:"not null;index"`
	TargetType  string `gorm:"not null;index"`
	TargetID    *uint
	Metadata    string
	CreatedAt   time.Time
}

func (AuditLogModel) TableName() string { return "audit_logs" }
