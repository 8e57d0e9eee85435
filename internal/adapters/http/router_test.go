package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/seinn09/digforweb/internal/adapters/db/sqlite"
	"github.com/seinn09/digforweb/internal/application"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "digforweb_http_test.db")

	db, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqlite.RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	service := application.NewCaseService(sqlite.NewCaseRepository(db))
	srv := httptest.NewServer(NewRouter(service))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerOfficer(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register-petugas", "", map[string]any{
		"name": "Dewi Pratama", "email": "dewi@forensic.test", "password": "rahasia123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register officer: status %d body %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register did not return a token: %v", body)
	}
	return token
}

func TestLoginReturnsTokenAndRole(t *testing.T) {
	srv := newTestServer(t)
	registerOfficer(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]any{
		"email": "dewi@forensic.test", "password": "rahasia123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d body %v", resp.StatusCode, body)
	}
	if body["role"] != "petugas" {
		t.Fatalf("expected petugas role, got %v", body["role"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("login must return a token")
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]any{
		"email": "dewi@forensic.test", "password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password should be 401, got %d", resp.StatusCode)
	}
}

func TestDuplicateRegistrationIsRejected(t *testing.T) {
	srv := newTestServer(t)
	registerOfficer(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register-viewer", "", map[string]any{
		"name": "Dewi Dua", "email": "dewi@forensic.test", "password": "lain123",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate email should be 422, got %d body %v", resp.StatusCode, body)
	}
}

func TestLogoutRevokesBearerToken(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/korban/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list before logout: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/logout", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/korban/", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("revoked token should be 401, got %d", resp.StatusCode)
	}
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/korban/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestVictimCRUDAndEnvelope(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/korban/", token, map[string]any{
		"nama": "John Anderson", "kontak": "+62 811 000 111", "lokasi": "Jakarta",
		"tgl_laporan": "2026-02-10", "deskripsi_laporan": "email account takeover",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create victim: status %d body %v", resp.StatusCode, body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("create response must carry a data envelope, got %v", body)
	}
	if data["nama"] != "John Anderson" {
		t.Fatalf("victim name wrong: %v", data)
	}
	id := uint(data["id"].(float64))

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/korban/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list victims: status %d", resp.StatusCode)
	}
	if _, ok := body["data"].([]any); !ok {
		t.Fatalf("list response must carry a data array, got %v", body)
	}

	resp, body = doJSON(t, http.MethodPut, fmt.Sprintf("%s/korban/%d", srv.URL, id), token, map[string]any{
		"nama": "John A. Anderson", "kontak": "+62 811 000 111",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update victim: status %d body %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/korban/9999", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("absent victim should be 404, got %d", resp.StatusCode)
	}
}

func TestCaseRequiresExistingVictim(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/kasus/", token, map[string]any{
		"korban_id": 12345, "jenis_kasus": "Phishing",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("dangling korban_id should be 422, got %d body %v", resp.StatusCode, body)
	}
}

func TestActionStageVocabularyIsEnforced(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	_, victim := doJSON(t, http.MethodPost, srv.URL+"/korban/", token, map[string]any{"nama": "Sarah Mitchell"})
	victimID := uint(victim["data"].(map[string]any)["id"].(float64))
	_, kasus := doJSON(t, http.MethodPost, srv.URL+"/kasus/", token, map[string]any{
		"korban_id": victimID, "jenis_kasus": "Data Theft",
	})
	caseID := uint(kasus["data"].(map[string]any)["id"].(float64))

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/tindakan/", token, map[string]any{
		"case_id": caseID, "tahap_forensik": "guessing",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown stage should be 422, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/tindakan/", token, map[string]any{
		"case_id": caseID, "tahap_forensik": "Analysis", "pic": "D. Pratama",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("valid stage should be accepted, got %d body %v", resp.StatusCode, body)
	}
	if body["data"].(map[string]any)["tahap_forensik"] != "analysis" {
		t.Fatalf("stage should be normalized to lower case: %v", body)
	}
}

func TestViewerCannotMutate(t *testing.T) {
	srv := newTestServer(t)
	officerToken := registerOfficer(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register-viewer", "", map[string]any{
		"name": "Budi Santoso", "email": "budi@forensic.test", "password": "lihat123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register viewer: status %d body %v", resp.StatusCode, body)
	}
	viewerToken := body["token"].(string)

	_, victim := doJSON(t, http.MethodPost, srv.URL+"/korban/", officerToken, map[string]any{"nama": "Robert Chen"})
	victimID := uint(victim["data"].(map[string]any)["id"].(float64))

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/korban/", viewerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("viewer should be able to list, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/korban/", viewerToken, map[string]any{"nama": "Nope"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer create should be 403, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/korban/%d", srv.URL, victimID), viewerToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer delete should be 403, got %d", resp.StatusCode)
	}
}

func TestVictimDeleteCascadesOverAPI(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	_, victim := doJSON(t, http.MethodPost, srv.URL+"/korban/", token, map[string]any{"nama": "John Anderson"})
	victimID := uint(victim["data"].(map[string]any)["id"].(float64))
	_, kasus := doJSON(t, http.MethodPost, srv.URL+"/kasus/", token, map[string]any{
		"korban_id": victimID, "jenis_kasus": "Email Compromise",
	})
	caseID := uint(kasus["data"].(map[string]any)["id"].(float64))
	_, bukti := doJSON(t, http.MethodPost, srv.URL+"/evidence/", token, map[string]any{
		"case_id": caseID, "jenis_bukti": "Email Logs", "lokasi_penyimpanan": "Locker A-3",
	})
	evidenceID := uint(bukti["data"].(map[string]any)["id"].(float64))

	resp, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/korban/%d", srv.URL, victimID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete victim: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/kasus/%d", srv.URL, caseID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("case should be gone after victim cascade, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/evidence/%d", srv.URL, evidenceID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("evidence should be gone after victim cascade, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/korban/%d", srv.URL, victimID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("re-deleting should be 404, got %d", resp.StatusCode)
	}
}

func TestStatsReflectStoredRows(t *testing.T) {
	srv := newTestServer(t)
	token := registerOfficer(t, srv)

	_, victim := doJSON(t, http.MethodPost, srv.URL+"/korban/", token, map[string]any{"nama": "Sarah Mitchell"})
	victimID := uint(victim["data"].(map[string]any)["id"].(float64))
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/kasus/", token, map[string]any{
		"korban_id": victimID, "jenis_kasus": "Ransomware",
	})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/dashboard/stats", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: status %d", resp.StatusCode)
	}
	data := body["data"].(map[string]any)
	if data["total_korban"].(float64) != 1 || data["total_kasus"].(float64) != 1 {
		t.Fatalf("unexpected stats: %v", data)
	}
}
