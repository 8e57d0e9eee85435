package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/seinn09/digforweb/internal/application"
	"github.com/seinn09/digforweb/internal/domain"
)

type Server struct {
	service  *application.CaseService
	listener net.Listener
	path     string
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  any         `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Start(path string, service *application.CaseService) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	s := &Server{service: service, listener: ln, path: path}
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(context.Background(), req)
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

type idParams struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
}

type victimParams struct {
	Token             string `json:"token"`
	ID                uint   `json:"id"`
	Name              string `json:"nama"`
	Contact           string `json:"kontak"`
	Location          string `json:"lokasi"`
	ReportDate        string `json:"tgl_laporan"`
	ReportDescription string `json:"deskripsi_laporan"`
}

type caseParams struct {
	Token        string `json:"token"`
	ID           uint   `json:"id"`
	VictimID     uint   `json:"korban_id"`
	CaseType     string `json:"jenis_kasus"`
	IncidentDate string `json:"tanggal_kejadian"`
	Summary      string `json:"ringkasan_kasus"`
	Status       string `json:"status_kasus"`
}

type evidenceParams struct {
	Token           string `json:"token"`
	ID              uint   `json:"id"`
	CaseID          uint   `json:"case_id"`
	EvidenceType    string `json:"jenis_bukti"`
	StorageLocation string `json:"lokasi_penyimpanan"`
	HashValue       string `json:"hash_value"`
	CollectionTime  string `json:"waktu_pengambilan_bukti"`
}

type actionParams struct {
	Token          string `json:"token"`
	ID             uint   `json:"id"`
	CaseID         uint   `json:"case_id"`
	Stage          string `json:"tahap_forensik"`
	Description    string `json:"desk_tindakan"`
	PersonInCharge string `json:"pic"`
	ExecutionTime  string `json:"waktu_pelaksanaan"`
	Status         string `json:"status_tindakan"`
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32600, Message: "invalid request"}, ID: req.ID}
	}

	switch req.Method {
	case "auth.login":
		return s.handleAuthLogin(ctx, req)
	case "auth.register.petugas":
		return s.handleRegister(ctx, req, s.service.RegisterPetugas)
	case "auth.register.viewer":
		return s.handleRegister(ctx, req, s.service.RegisterViewer)
	case "auth.logout":
		var p struct {
			Token string `json:"token"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.LogoutBearer(ctx, p.Token); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}
	case "auth.whoami":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		return response{JSONRPC: "2.0", Result: map[string]any{
			"id":    identity.User.ID,
			"name":  identity.User.Name,
			"email": identity.User.Email,
			"role":  identity.User.Role,
		}, ID: req.ID}

	case "victims.list":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		out, err := s.service.ListVictims(ctx, identity)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "victims.get":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.GetVictim(ctx, identity, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "victims.create":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p victimParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.CreateVictim(ctx, identity, domain.Victim{
			Name:              p.Name,
			Contact:           p.Contact,
			Location:          p.Location,
			ReportDate:        p.ReportDate,
			ReportDescription: p.ReportDescription,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "victims.update":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p victimParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.UpdateVictim(ctx, identity, p.ID, domain.Victim{
			Name:              p.Name,
			Contact:           p.Contact,
			Location:          p.Location,
			ReportDate:        p.ReportDate,
			ReportDescription: p.ReportDescription,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "victims.delete":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteVictim(ctx, identity, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}

	case "cases.list":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		out, err := s.service.ListCases(ctx, identity)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "cases.get":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.GetCase(ctx, identity, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "cases.create":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p caseParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.CreateCase(ctx, identity, domain.Case{
			VictimID:     p.VictimID,
			CaseType:     p.CaseType,
			IncidentDate: p.IncidentDate,
			Summary:      p.Summary,
			Status:       p.Status,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "cases.update":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p caseParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.UpdateCase(ctx, identity, p.ID, domain.Case{
			VictimID:     p.VictimID,
			CaseType:     p.CaseType,
			IncidentDate: p.IncidentDate,
			Summary:      p.Summary,
			Status:       p.Status,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "cases.delete":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteCase(ctx, identity, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}

	case "evidence.list":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		out, err := s.service.ListEvidence(ctx, identity)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "evidence.get":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.GetEvidence(ctx, identity, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "evidence.create":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p evidenceParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.CreateEvidence(ctx, identity, domain.Evidence{
			CaseID:          p.CaseID,
			EvidenceType:    p.EvidenceType,
			StorageLocation: p.StorageLocation,
			HashValue:       p.HashValue,
			CollectionTime:  p.CollectionTime,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "evidence.update":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p evidenceParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.UpdateEvidence(ctx, identity, p.ID, domain.Evidence{
			CaseID:          p.CaseID,
			EvidenceType:    p.EvidenceType,
			StorageLocation: p.StorageLocation,
			HashValue:       p.HashValue,
			CollectionTime:  p.CollectionTime,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "evidence.delete":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteEvidence(ctx, identity, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}

	case "actions.list":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		out, err := s.service.ListActions(ctx, identity)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "actions.get":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.GetAction(ctx, identity, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "actions.create":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p actionParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.CreateAction(ctx, identity, domain.ForensicAction{
			CaseID:         p.CaseID,
			Stage:          p.Stage,
			Description:    p.Description,
			PersonInCharge: p.PersonInCharge,
			ExecutionTime:  p.ExecutionTime,
			Status:         p.Status,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "actions.update":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p actionParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.UpdateAction(ctx, identity, p.ID, domain.ForensicAction{
			CaseID:         p.CaseID,
			Stage:          p.Stage,
			Description:    p.Description,
			PersonInCharge: p.PersonInCharge,
			ExecutionTime:  p.ExecutionTime,
			Status:         p.Status,
		})
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "actions.delete":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteAction(ctx, identity, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}

	case "stats.get":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		out, err := s.service.Stats(ctx, identity)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "audit.list":
		identity, rpcResp, ok := s.authz(ctx, req)
		if !ok {
			return rpcResp
		}
		var p struct {
			Token string `json:"token"`
			Limit int    `json:"limit"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.ListAuditLogs(ctx, identity, p.Limit)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	default:
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32601, Message: "method not found"}, ID: req.ID}
	}
}

func (s *Server) handleAuthLogin(ctx context.Context, req request) response {
	var p struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		TokenName string `json:"token_name"`
	}
	if !decodeParams(req.Params, &p) {
		return invalidParams(req.ID)
	}
	u, token, err := s.service.Login(ctx, p.Email, p.Password, p.TokenName)
	if err != nil {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: 40100, Message: "invalid credentials"}, ID: req.ID}
	}
	return response{JSONRPC: "2.0", Result: map[string]any{"user_id": u.ID, "email": u.Email, "role": u.Role, "token": token}, ID: req.ID}
}

func (s *Server) handleRegister(ctx context.Context, req request, register func(context.Context, string, string, string) (domain.User, string, error)) response {
	var p struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeParams(req.Params, &p) {
		return invalidParams(req.ID)
	}
	u, token, err := register(ctx, p.Name, p.Email, p.Password)
	if err != nil {
		return appError(req.ID, err)
	}
	return response{JSONRPC: "2.0", Result: map[string]any{"user_id": u.ID, "email": u.Email, "role": u.Role, "token": token}, ID: req.ID}
}

func (s *Server) authz(ctx context.Context, req request) (domain.Identity, response, bool) {
	var p struct {
		Token string `json:"token"`
	}
	if !decodeParams(req.Params, &p) {
		return domain.Identity{}, invalidParams(req.ID), false
	}
	identity, err := s.service.AuthenticateBearerToken(ctx, p.Token)
	if err != nil {
		return domain.Identity{}, response{JSONRPC: "2.0", Error: &rpcError{Code: 40100, Message: "unauthorized"}, ID: req.ID}, false
	}
	return identity, response{}, true
}

func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: -32602, Message: "invalid params"}, ID: id}
}

func appError(id any, err error) response {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response{JSONRPC: "2.0", Error: &rpcError{Code: 40400, Message: "not found"}, ID: id}
	case errors.Is(err, domain.ErrForbidden):
		return response{JSONRPC: "2.0", Error: &rpcError{Code: 40300, Message: "forbidden"}, ID: id}
	case domain.IsValidation(err):
		return response{JSONRPC: "2.0", Error: &rpcError{Code: 42200, Message: err.Error()}, ID: id}
	default:
		return response{JSONRPC: "2.0", Error: &rpcError{Code: 50000, Message: err.Error()}, ID: id}
	}
}
