package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/storegrade/storegrade-backend/internal/provisioning"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
	"github.com/storegrade/storegrade-backend/pkg/logger"
)

// provisionRequest is the wire payload accepted by the create-user endpoint.
// The shape predates the rest of the API, so it bypasses the standard
// envelope and validators. Callers send name and address at the top level;
// metadata is an extension for anything beyond those two.
type provisionRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Address  string          `json:"address"`
	Metadata dbtypes.JSONMap `json:"metadata"`
	Role     string          `json:"role"`
}

// metadata merges the top-level profile fields into the metadata map the
// bootstrap defaults profile rows from. Explicit metadata keys win.
func (b provisionRequest) metadata() dbtypes.JSONMap {
	if b.Name == "" && b.Address == "" {
		return b.Metadata
	}
	merged := dbtypes.JSONMap{}
	if b.Name != "" {
		merged["name"] = b.Name
	}
	if b.Address != "" {
		merged["address"] = b.Address
	}
	for k, v := range b.Metadata {
		merged[k] = v
	}
	return merged
}

type provisionSuccess struct {
	Success bool                          `json:"success"`
	User    *provisioning.ProvisionedUser `json:"user"`
}

type provisionFailure struct {
	Error string `json:"error"`
}

// ProvisionCreateUser handles POST /api/create-user for operators holding
// the service key.
func ProvisionCreateUser(svc provisioning.Service, serviceKey string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeProvisionError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if svc == nil || serviceKey == "" {
			writeProvisionError(w, http.StatusInternalServerError, "provisioning unavailable")
			return
		}

		presented := bearerToken(r)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(serviceKey)) != 1 {
			writeProvisionError(w, http.StatusUnauthorized, "invalid service key")
			return
		}

		var body provisionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeProvisionError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		user, err := svc.CreateUser(r.Context(), provisioning.CreateUserInput{
			Email:    body.Email,
			Password: body.Password,
			Metadata: body.metadata(),
			Role:     body.Role,
		})
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "provision.create_user", err)
			}
			status := http.StatusBadRequest
			msg := err.Error()
			if typed := pkgerrors.As(err); typed != nil {
				msg = typed.Message()
				if typed.Code() == pkgerrors.CodeInternal {
					status = http.StatusInternalServerError
				}
			}
			writeProvisionError(w, status, msg)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(provisionSuccess{Success: true, User: user})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func writeProvisionError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(provisionFailure{Error: msg})
}
