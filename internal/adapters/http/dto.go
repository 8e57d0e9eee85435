package http

import (
	"time"

	"github.com/seinn09/digforweb/internal/domain"
)

// Wire field names stay in Indonesian for compatibility with existing
// clients; the rest of the codebase uses the English model.

type victimDTO struct {
	ID                uint      `json:"id,omitempty"`
	Name              string    `json:"nama"`
	Contact           string    `json:"kontak"`
	Location          string    `json:"lokasi"`
	ReportDate        string    `json:"tgl_laporan"`
	ReportDescription string    `json:"deskripsi_laporan"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

func victimToDTO(v domain.Victim) victimDTO {
	return victimDTO{
		ID:                v.ID,
		Name:              v.Name,
		Contact:           v.Contact,
		Location:          v.Location,
		ReportDate:        v.ReportDate,
		ReportDescription: v.ReportDescription,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func (d victimDTO) toDomain() domain.Victim {
	return domain.Victim{
		Name:              d.Name,
		Contact:           d.Contact,
		Location:          d.Location,
		ReportDate:        d.ReportDate,
		ReportDescription: d.ReportDescription,
	}
}

type caseDTO struct {
	ID           uint      `json:"id,omitempty"`
	VictimID     uint      `json:"korban_id"`
	CaseType     string    `json:"jenis_kasus"`
	IncidentDate string    `json:"tanggal_kejadian"`
	Summary      string    `json:"ringkasan_kasus"`
	Status       string    `json:"status_kasus"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func caseToDTO(c domain.Case) caseDTO {
	return caseDTO{
		ID:           c.ID,
		VictimID:     c.VictimID,
		CaseType:     c.CaseType,
		IncidentDate: c.IncidentDate,
		Summary:      c.Summary,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d caseDTO) toDomain() domain.Case {
	return domain.Case{
		VictimID:     d.VictimID,
		CaseType:     d.CaseType,
		IncidentDate: d.IncidentDate,
		Summary:      d.Summary,
		Status:       d.Status,
	}
}

type evidenceDTO struct {
	ID              uint      `json:"id,omitempty"`
	CaseID          uint      `json:"case_id"`
	EvidenceType    string    `json:"jenis_bukti"`
	StorageLocation string    `json:"lokasi_penyimpanan"`
	HashValue       string    `json:"hash_value"`
	CollectionTime  string    `json:"waktu_pengambilan_bukti"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

func evidenceToDTO(e domain.Evidence) evidenceDTO {
	return evidenceDTO{
		ID:              e.ID,
		CaseID:          e.CaseID,
		EvidenceType:    e.EvidenceType,
		StorageLocation: e.StorageLocation,
		HashValue:       e.HashValue,
		CollectionTime:  e.CollectionTime,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (d evidenceDTO) toDomain() domain.Evidence {
	return domain.Evidence{
		CaseID:          d.CaseID,
		EvidenceType:    d.EvidenceType,
		StorageLocation: d.StorageLocation,
		HashValue:       d.HashValue,
		CollectionTime:  d.CollectionTime,
	}
}

type actionDTO struct {
	ID             uint      `json:"id,omitempty"`
	CaseID         uint      `json:"case_id"`
	Stage          string    `json:"tahap_forensik"`
	Description    string    `json:"desk_tindakan"`
	PersonInCharge string    `json:"pic"`
	ExecutionTime  string    `json:"waktu_pelaksanaan"`
	Status         string    `json:"status_tindakan"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

func actionToDTO(a domain.ForensicAction) actionDTO {
	return actionDTO{
		ID:             a.ID,
		CaseID:         a.CaseID,
		Stage:          a.Stage,
		Description:    a.Description,
		PersonInCharge: a.PersonInCharge,
		ExecutionTime:  a.ExecutionTime,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (d actionDTO) toDomain() domain.ForensicAction {
	return domain.ForensicAction{
		CaseID:         d.CaseID,
		Stage:          d.Stage,
		Description:    d.Description,
		PersonInCharge: d.PersonInCharge,
		ExecutionTime:  d.ExecutionTime,
		Status:         d.Status,
	}
}

type statsDTO struct {
	Victims  int64 `json:"total_korban"`
	Cases    int64 `json:"total_kasus"`
	Evidence int64 `json:"total_evidence"`
	Actions  int64 `json:"total_tindakan"`
}

type auditDTO struct {
	ID             uint      `json:"id"`
	ActorUserID    *uint     `json:"actor_user_id"`
	ActorUserEmail string    `json:"actor_user_email"`
	Action         string    `json:"action"`
	TargetType     string    `json:"target_type"`
	TargetID       *uint     `json:"target_id"`
	Metadata       string    `json:"metadata"`
	CreatedAt      time.Time `json:"created_at"`
}

func auditToDTO(l domain.AuditRecord) auditDTO {
	return auditDTO{
		ID:             l.ID,
		ActorUserID:    l.ActorUserID,
		ActorUserEmail: l.ActorUserEmail,
		Action:         l.Action,
		TargetType:     l.TargetType,
		TargetID:       l.TargetID,
		Metadata:       l.Metadata,
		CreatedAt:      l.CreatedAt,
	}
}
