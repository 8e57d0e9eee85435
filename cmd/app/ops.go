package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/seinn09/digforweb/internal/domain"
)

// The HTTP API speaks the Indonesian wire schema while the unix socket
// RPC returns domain structs directly, so each op normalizes its
// transport's payload into the domain type before printing.

type wireVictim struct {
	ID                uint      `json:"id"`
	Name              string    `json:"nama"`
	Contact           string    `json:"kontak"`
	Location          string    `json:"lokasi"`
	ReportDate        string    `json:"tgl_laporan"`
	ReportDescription string    `json:"deskripsi_laporan"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (w wireVictim) toDomain() domain.Victim {
	return domain.Victim{ID: w.ID, Name: w.Name, Contact: w.Contact, Location: w.Location, ReportDate: w.ReportDate, ReportDescription: w.ReportDescription, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

type wireCase struct {
	ID           uint      `json:"id"`
	VictimID     uint      `json:"korban_id"`
	CaseType     string    `json:"jenis_kasus"`
	IncidentDate string    `json:"tanggal_kejadian"`
	Summary      string    `json:"ringkasan_kasus"`
	Status       string    `json:"status_kasus"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w wireCase) toDomain() domain.Case {
	return domain.Case{ID: w.ID, VictimID: w.VictimID, CaseType: w.CaseType, IncidentDate: w.IncidentDate, Summary: w.Summary, Status: w.Status, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

type wireEvidence struct {
	ID              uint      `json:"id"`
	CaseID          uint      `json:"case_id"`
	EvidenceType    string    `json:"jenis_bukti"`
	StorageLocation string    `json:"lokasi_penyimpanan"`
	HashValue       string    `json:"hash_value"`
	CollectionTime  string    `json:"waktu_pengambilan_bukti"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (w wireEvidence) toDomain() domain.Evidence {
	return domain.Evidence{ID: w.ID, CaseID: w.CaseID, EvidenceType: w.EvidenceType, StorageLocation: w.StorageLocation, HashValue: w.HashValue, CollectionTime: w.CollectionTime, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

type wireAction struct {
	ID             uint      `json:"id"`
	CaseID         uint      `json:"case_id"`
	Stage          string    `json:"tahap_forensik"`
	Description    string    `json:"desk_tindakan"`
	PersonInCharge string    `json:"pic"`
	ExecutionTime  string    `json:"waktu_pelaksanaan"`
	Status         string    `json:"status_tindakan"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (w wireAction) toDomain() domain.ForensicAction {
	return domain.ForensicAction{ID: w.ID, CaseID: w.CaseID, Stage: w.Stage, Description: w.Description, PersonInCharge: w.PersonInCharge, ExecutionTime: w.ExecutionTime, Status: w.Status, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

func victimWirePayload(v domain.Victim) map[string]any {
	return map[string]any{
		"nama":              v.Name,
		"kontak":            v.Contact,
		"lokasi":            v.Location,
		"tgl_laporan":       v.ReportDate,
		"deskripsi_laporan": v.ReportDescription,
	}
}

func caseWirePayload(c domain.Case) map[string]any {
	return map[string]any{
		"korban_id":        c.VictimID,
		"jenis_kasus":      c.CaseType,
		"tanggal_kejadian": c.IncidentDate,
		"ringkasan_kasus":  c.Summary,
		"status_kasus":     c.Status,
	}
}

func evidenceWirePayload(e domain.Evidence) map[string]any {
	return map[string]any{
		"case_id":                 e.CaseID,
		"jenis_bukti":             e.EvidenceType,
		"lokasi_penyimpanan":      e.StorageLocation,
		"hash_value":              e.HashValue,
		"waktu_pengambilan_bukti": e.CollectionTime,
	}
}

func actionWirePayload(a domain.ForensicAction) map[string]any {
	return map[string]any{
		"case_id":           a.CaseID,
		"tahap_forensik":    a.Stage,
		"desk_tindakan":     a.Description,
		"pic":               a.PersonInCharge,
		"waktu_pelaksanaan": a.ExecutionTime,
		"status_tindakan":   a.Status,
	}
}

type loginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func doLogin(ctx context.Context, cfg cliConfig, email, password, tokenName string, out *loginResult) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "auth.login", map[string]any{
			"email":      email,
			"password":   password,
			"token_name": tokenName,
		}, out)
	}
	client := newAPIClient(cfg.Server, "")
	if err := client.request(ctx, http.MethodPost, "/login", map[string]any{"email": email, "password": password}, out); err != nil {
		return err
	}
	out.Email = email
	return nil
}

func doRegister(ctx context.Context, cfg cliConfig, role, name, email, password string, out *loginResult) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "auth.register."+role, map[string]any{
			"name":     name,
			"email":    email,
			"password": password,
		}, out)
	}
	client := newAPIClient(cfg.Server, "")
	path := "/register-petugas"
	if role == "viewer" {
		path = "/register-viewer"
	}
	if err := client.request(ctx, http.MethodPost, path, map[string]any{"name": name, "email": email, "password": password}, out); err != nil {
		return err
	}
	out.Email = email
	return nil
}

type whoAmIResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func doWhoAmI(ctx context.Context, cfg cliConfig, out *whoAmIResult) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "auth.whoami", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, "/auth/whoami", nil, out)
}

func doLogout(ctx context.Context, cfg cliConfig) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "auth.logout", map[string]any{"token": cfg.Token}, nil)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/logout", nil, nil)
}

// Victims

func doVictimsList(ctx context.Context, cfg cliConfig, out *[]domain.Victim) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "victims.list", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire []wireVictim
	if err := client.request(ctx, http.MethodGet, "/korban/", nil, &wire); err != nil {
		return err
	}
	*out = make([]domain.Victim, 0, len(wire))
	for _, w := range wire {
		*out = append(*out, w.toDomain())
	}
	return nil
}

func doVictimsGet(ctx context.Context, cfg cliConfig, id uint, out *domain.Victim) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "victims.get", map[string]any{"token": cfg.Token, "id": id}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireVictim
	if err := client.request(ctx, http.MethodGet, fmt.Sprintf("/korban/%d", id), nil, &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doVictimsCreate(ctx context.Context, cfg cliConfig, in domain.Victim, out *domain.Victim) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := victimWirePayload(in)
		params["token"] = cfg.Token
		return client.call(ctx, "victims.create", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireVictim
	if err := client.request(ctx, http.MethodPost, "/korban/", victimWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doVictimsUpdate(ctx context.Context, cfg cliConfig, id uint, in domain.Victim, out *domain.Victim) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := victimWirePayload(in)
		params["token"] = cfg.Token
		params["id"] = id
		return client.call(ctx, "victims.update", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireVictim
	if err := client.request(ctx, http.MethodPut, fmt.Sprintf("/korban/%d", id), victimWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doVictimsDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "victims.delete", map[string]any{"token": cfg.Token, "id": id}, nil)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodDelete, fmt.Sprintf("/korban/%d", id), nil, nil)
}

// Cases

func doCasesList(ctx context.Context, cfg cliConfig, out *[]domain.Case) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "cases.list", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire []wireCase
	if err := client.request(ctx, http.MethodGet, "/kasus/", nil, &wire); err != nil {
		return err
	}
	*out = make([]domain.Case, 0, len(wire))
	for _, w := range wire {
		*out = append(*out, w.toDomain())
	}
	return nil
}

func doCasesGet(ctx context.Context, cfg cliConfig, id uint, out *domain.Case) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "cases.get", map[string]any{"token": cfg.Token, "id": id}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireCase
	if err := client.request(ctx, http.MethodGet, fmt.Sprintf("/kasus/%d", id), nil, &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doCasesCreate(ctx context.Context, cfg cliConfig, in domain.Case, out *domain.Case) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := caseWirePayload(in)
		params["token"] = cfg.Token
		return client.call(ctx, "cases.create", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireCase
	if err := client.request(ctx, http.MethodPost, "/kasus/", caseWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doCasesUpdate(ctx context.Context, cfg cliConfig, id uint, in domain.Case, out *domain.Case) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := caseWirePayload(in)
		params["token"] = cfg.Token
		params["id"] = id
		return client.call(ctx, "cases.update", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireCase
	if err := client.request(ctx, http.MethodPut, fmt.Sprintf("/kasus/%d", id), caseWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doCasesDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "cases.delete", map[string]any{"token": cfg.Token, "id": id}, nil)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodDelete, fmt.Sprintf("/kasus/%d", id), nil, nil)
}

// Evidence

func doEvidenceList(ctx context.Context, cfg cliConfig, out *[]domain.Evidence) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "evidence.list", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire []wireEvidence
	if err := client.request(ctx, http.MethodGet, "/evidence/", nil, &wire); err != nil {
		return err
	}
	*out = make([]domain.Evidence, 0, len(wire))
	for _, w := range wire {
		*out = append(*out, w.toDomain())
	}
	return nil
}

func doEvidenceGet(ctx context.Context, cfg cliConfig, id uint, out *domain.Evidence) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "evidence.get", map[string]any{"token": cfg.Token, "id": id}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireEvidence
	if err := client.request(ctx, http.MethodGet, fmt.Sprintf("/evidence/%d", id), nil, &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doEvidenceCreate(ctx context.Context, cfg cliConfig, in domain.Evidence, out *domain.Evidence) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := evidenceWirePayload(in)
		params["token"] = cfg.Token
		return client.call(ctx, "evidence.create", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireEvidence
	if err := client.request(ctx, http.MethodPost, "/evidence/", evidenceWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doEvidenceUpdate(ctx context.Context, cfg cliConfig, id uint, in domain.Evidence, out *domain.Evidence) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := evidenceWirePayload(in)
		params["token"] = cfg.Token
		params["id"] = id
		return client.call(ctx, "evidence.update", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireEvidence
	if err := client.request(ctx, http.MethodPut, fmt.Sprintf("/evidence/%d", id), evidenceWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doEvidenceDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "evidence.delete", map[string]any{"token": cfg.Token, "id": id}, nil)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodDelete, fmt.Sprintf("/evidence/%d", id), nil, nil)
}

// Forensic actions

func doActionsList(ctx context.Context, cfg cliConfig, out *[]domain.ForensicAction) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "actions.list", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire []wireAction
	if err := client.request(ctx, http.MethodGet, "/tindakan/", nil, &wire); err != nil {
		return err
	}
	*out = make([]domain.ForensicAction, 0, len(wire))
	for _, w := range wire {
		*out = append(*out, w.toDomain())
	}
	return nil
}

func doActionsGet(ctx context.Context, cfg cliConfig, id uint, out *domain.ForensicAction) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "actions.get", map[string]any{"token": cfg.Token, "id": id}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireAction
	if err := client.request(ctx, http.MethodGet, fmt.Sprintf("/tindakan/%d", id), nil, &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doActionsCreate(ctx context.Context, cfg cliConfig, in domain.ForensicAction, out *domain.ForensicAction) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := actionWirePayload(in)
		params["token"] = cfg.Token
		return client.call(ctx, "actions.create", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireAction
	if err := client.request(ctx, http.MethodPost, "/tindakan/", actionWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doActionsUpdate(ctx context.Context, cfg cliConfig, id uint, in domain.ForensicAction, out *domain.ForensicAction) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		params := actionWirePayload(in)
		params["token"] = cfg.Token
		params["id"] = id
		return client.call(ctx, "actions.update", params, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireAction
	if err := client.request(ctx, http.MethodPut, fmt.Sprintf("/tindakan/%d", id), actionWirePayload(in), &wire); err != nil {
		return err
	}
	*out = wire.toDomain()
	return nil
}

func doActionsDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "actions.delete", map[string]any{"token": cfg.Token, "id": id}, nil)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodDelete, fmt.Sprintf("/tindakan/%d", id), nil, nil)
}

// Dashboard and audit

type wireStats struct {
	Victims  int64 `json:"total_korban"`
	Cases    int64 `json:"total_kasus"`
	Evidence int64 `json:"total_evidence"`
	Actions  int64 `json:"total_tindakan"`
}

func doStatsGet(ctx context.Context, cfg cliConfig, out *domain.Stats) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "stats.get", map[string]any{"token": cfg.Token}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire wireStats
	if err := client.request(ctx, http.MethodGet, "/dashboard/stats", nil, &wire); err != nil {
		return err
	}
	*out = domain.Stats{Victims: wire.Victims, Cases: wire.Cases, Evidence: wire.Evidence, Actions: wire.Actions}
	return nil
}

type wireAudit struct {
	ID             uint      `json:"id"`
	ActorUserID    *uint     `json:"actor_user_id"`
	ActorUserEmail string    `json:"actor_user_email"`
	Action         string    `json:"action"`
	TargetType     string    `json:"target_type"`
	TargetID       *uint     `json:"target_id"`
	Metadata       string    `json:"metadata"`
	CreatedAt      time.Time `json:"created_at"`
}

func doAuditList(ctx context.Context, cfg cliConfig, limit int, out *[]domain.AuditRecord) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "audit.list", map[string]any{"token": cfg.Token, "limit": limit}, out)
	}
	client := newAPIClient(cfg.Server, cfg.Token)
	var wire []wireAudit
	if err := client.request(ctx, http.MethodGet, fmt.Sprintf("/audit/logs?limit=%d", limit), nil, &wire); err != nil {
		return err
	}
	*out = make([]domain.AuditRecord, 0, len(wire))
	for _, w := range wire {
		*out = append(*out, domain.AuditRecord{
			ID:             w.ID,
			ActorUserID:    w.ActorUserID,
			ActorUserEmail: w.ActorUserEmail,
			Action:         w.Action,
			TargetType:     w.TargetType,
			TargetID:       w.TargetID,
			Metadata:       w.Metadata,
			CreatedAt:      w.CreatedAt,
		})
	}
	return nil
}

func uintToString(v uint) string {
	return fmt.Sprintf("%d", v)
}
