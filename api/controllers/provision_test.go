package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/internal/provisioning"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

type stubProvisionService struct {
	user *provisioning.ProvisionedUser
	err  error

	gotInput *provisioning.CreateUserInput
}

func (s *stubProvisionService) CreateUser(ctx context.Context, input provisioning.CreateUserInput) (*provisioning.ProvisionedUser, error) {
	s.gotInput = &input
	return s.user, s.err
}

func TestProvisionCreateUserRejectsNonPost(t *testing.T) {
	handler := ProvisionCreateUser(&stubProvisionService{}, "svc-key", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/create-user", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if got := resp.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("expected Allow: POST got %q", got)
	}
}

func TestProvisionCreateUserRejectsBadKey(t *testing.T) {
	svc := &stubProvisionService{}
	handler := ProvisionCreateUser(svc, "svc-key", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer wrong-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.gotInput != nil {
		t.Fatal("service must not be reached with a bad key")
	}
}

func TestProvisionCreateUserRejectsMalformedJSON(t *testing.T) {
	handler := ProvisionCreateUser(&stubProvisionService{}, "svc-key", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader([]byte(`{"email":`)))
	req.Header.Set("Authorization", "Bearer svc-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if failure.Error != "invalid JSON body" {
		t.Fatalf("expected invalid JSON error got %q", failure.Error)
	}
}

func TestProvisionCreateUserSuccessShape(t *testing.T) {
	provisioned := &provisioning.ProvisionedUser{
		ID:           uuid.New(),
		Email:        "ops@example.com",
		UserMetadata: dbtypes.JSONMap{"name": "Ops"},
	}
	svc := &stubProvisionService{user: provisioned}
	handler := ProvisionCreateUser(svc, "svc-key", nil)

	body := []byte(`{"email":"ops@example.com","password":"Secret#1","metadata":{"name":"Ops"},"role":"store_owner"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer svc-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotInput == nil || svc.gotInput.Role != "store_owner" {
		t.Fatalf("expected role forwarded to service, got %+v", svc.gotInput)
	}

	var success struct {
		Success bool `json:"success"`
		User    *struct {
			ID           uuid.UUID       `json:"id"`
			Email        string          `json:"email"`
			UserMetadata dbtypes.JSONMap `json:"user_metadata"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&success); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !success.Success || success.User == nil || success.User.Email != "ops@example.com" {
		t.Fatalf("unexpected payload: %+v", success)
	}
	if success.User.ID != provisioned.ID {
		t.Fatalf("expected id %s got %s", provisioned.ID, success.User.ID)
	}
}

func TestProvisionCreateUserFoldsTopLevelProfileFields(t *testing.T) {
	svc := &stubProvisionService{user: &provisioning.ProvisionedUser{ID: uuid.New(), Email: "jane@example.com"}}
	handler := ProvisionCreateUser(svc, "svc-key", nil)

	body := []byte(`{"name":"Jane","email":"jane@example.com","password":"Secret#1","address":"12 Oak Street","role":"store_owner"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer svc-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotInput == nil {
		t.Fatal("expected service to be reached")
	}
	if got := svc.gotInput.Metadata.String("name", ""); got != "Jane" {
		t.Fatalf("expected name folded into metadata, got %q", got)
	}
	if got := svc.gotInput.Metadata.String("address", ""); got != "12 Oak Street" {
		t.Fatalf("expected address folded into metadata, got %q", got)
	}
}

func TestProvisionCreateUserMetadataKeysWin(t *testing.T) {
	svc := &stubProvisionService{user: &provisioning.ProvisionedUser{ID: uuid.New(), Email: "jane@example.com"}}
	handler := ProvisionCreateUser(svc, "svc-key", nil)

	body := []byte(`{"name":"Jane","email":"jane@example.com","password":"Secret#1","metadata":{"name":"J. Doe"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer svc-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := svc.gotInput.Metadata.String("name", ""); got != "J. Doe" {
		t.Fatalf("expected explicit metadata name to win, got %q", got)
	}
}

func TestProvisionCreateUserMapsServiceErrors(t *testing.T) {
	svc := &stubProvisionService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := ProvisionCreateUser(svc, "svc-key", nil)

	body := []byte(`{"email":"dup@example.com","password":"Secret#1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/create-user", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer svc-key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if failure.Error != "email already registered" {
		t.Fatalf("expected conflict message got %q", failure.Error)
	}
}
