package idp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lacajita-admin/internal/config"
	"lacajita-admin/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type managementStub struct {
	srv *httptest.Server

	tokenRequests   atomic.Int64
	managedRequests atomic.Int64

	lastMethod string
	lastPath   string
	lastBody   []byte
}

// newManagementStub serves both the token endpoint and a handful of canned
// management responses so the client can be exercised end to end.
func newManagementStub(t *testing.T) *managementStub {
	t.Helper()
	stub := &managementStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		stub.tokenRequests.Add(1)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client_credentials", body["grant_type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3600}`))
	})
	mux.HandleFunc("/api/v2/", func(w http.ResponseWriter, r *http.Request) {
		stub.managedRequests.Add(1)
		stub.lastMethod = r.Method
		stub.lastPath = strings.TrimPrefix(r.URL.Path, "/api/v2")
		body, _ := io.ReadAll(r.Body)
		stub.lastBody = body

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case stub.lastPath == "/users" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"users":[
				{"user_id":"auth0|owner","email":"owner@example.com","name":"Owner"},
				{"user_id":"auth0|abc","email":"ana@example.com","name":"Ana"}
			],"total":2}`))
		case stub.lastPath == "/users" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"user_id":"auth0|new","email":"new@example.com"}`))
		case strings.Contains(stub.lastPath, "missing"):
			w.WriteHeader(http.StatusNotFound)
		case strings.HasPrefix(stub.lastPath, "/users/") && strings.HasSuffix(stub.lastPath, "/roles") && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"rol_admin","name":"admin","description":"Admins"}]`))
		case stub.lastPath == "/roles" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"rol_1","name":"editor","description":"Editors"}]`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"user_id":"auth0|abc","email":"ana@example.com"}`))
		}
	})

	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

func newTestClient(stub *managementStub, masterEmail string) *Client {
	client := NewClient(zap.NewNop().Sugar(), config.IdPConfig{
		Domain:       "tenant.example.auth0.com",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Audience:     "https://tenant.example.auth0.com/api/v2/",
	}, masterEmail)

	// Point the client at the stub instead of the real tenant.
	client.baseURL = stub.srv.URL + "/api/v2"
	client.tokenURL = stub.srv.URL + "/oauth/token"
	return client
}

func TestClientCachesToken(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	_, err := client.GetRoles(context.Background())
	assert.NoError(t, err)
	_, err = client.GetRoles(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, int64(1), stub.tokenRequests.Load())
	assert.Equal(t, int64(2), stub.managedRequests.Load())
}

func TestClientRefreshesExpiredToken(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	_, err := client.GetRoles(context.Background())
	assert.NoError(t, err)

	// Tokens are refreshed a minute ahead of expiry.
	client.mu.Lock()
	client.tokenExpiry = time.Now().Add(30 * time.Second)
	client.mu.Unlock()

	_, err = client.GetRoles(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stub.tokenRequests.Load())
}

func TestClientGetUsers(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	users, err := client.GetUsers(context.Background(), 0, 50)
	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "auth0|owner", users[0].UserID)
	assert.Equal(t, "ana@example.com", users[1].Email)
	assert.Contains(t, stub.lastPath, "/users")
}

func TestClientGetUserNotFound(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	user, err := client.GetUser(context.Background(), "auth0|missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, user)
}

func TestClientCreateUserDefaults(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	user, err := client.CreateUser(context.Background(), CreateUserRequest{Email: "new@example.com"})
	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "auth0|new", user.UserID)

	var sent CreateUserRequest
	require.NoError(t, json.Unmarshal(stub.lastBody, &sent))
	assert.Equal(t, "Username-Password-Authentication", sent.Connection)
	assert.NotEmpty(t, sent.Password)
	// Display name falls back to the mailbox part of the email.
	assert.Equal(t, "new", sent.Name)
}

func TestClientMasterGuardIsLocal(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "owner@example.com")

	// Identifiers containing the master email are refused without any call.
	err := client.DeleteUser(context.Background(), "owner@example.com")
	assert.ErrorIs(t, err, ErrMasterAccount)
	_, err = client.UpdateUser(context.Background(), "owner@example.com", UpdateUserRequest{Name: utils.PointerOf("renamed")})
	assert.ErrorIs(t, err, ErrMasterAccount)
	err = client.AssignRoles(context.Background(), "owner@example.com", []string{"rol_1"})
	assert.ErrorIs(t, err, ErrMasterAccount)
	assert.Equal(t, int64(0), stub.managedRequests.Load())

	// Once a listing reveals the master's user id, it is guarded too.
	_, err = client.GetUsers(context.Background(), 0, 50)
	assert.NoError(t, err)
	requestsAfterList := stub.managedRequests.Load()

	err = client.DeleteUser(context.Background(), "auth0|owner")
	assert.ErrorIs(t, err, ErrMasterAccount)
	assert.Equal(t, requestsAfterList, stub.managedRequests.Load())
}

func TestClientMasterRoleGuard(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "owner@example.com")

	// A non-master user's roles don't mark anything as protected.
	_, err := client.GetUserRoles(context.Background(), "auth0|abc")
	assert.NoError(t, err)
	err = client.DeleteRole(context.Background(), "rol_admin")
	assert.NoError(t, err)

	// Once the master's roles have been fetched, deleting one is refused
	// locally.
	_, err = client.GetUsers(context.Background(), 0, 50)
	assert.NoError(t, err)
	_, err = client.GetUserRoles(context.Background(), "auth0|owner")
	assert.NoError(t, err)
	requestsBefore := stub.managedRequests.Load()

	err = client.DeleteRole(context.Background(), "rol_admin")
	assert.ErrorIs(t, err, ErrMasterAccount)
	assert.Equal(t, requestsBefore, stub.managedRequests.Load())

	// Roles the master doesn't hold are still deletable.
	err = client.DeleteRole(context.Background(), "rol_other")
	assert.NoError(t, err)
}

func TestClientSetUserBlocked(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "owner@example.com")

	_, err := client.GetUsers(context.Background(), 0, 50)
	assert.NoError(t, err)

	// Blocking the master account is refused locally.
	_, err = client.SetUserBlocked(context.Background(), "auth0|owner", true)
	assert.ErrorIs(t, err, ErrMasterAccount)

	// Unblocking is always allowed.
	user, err := client.SetUserBlocked(context.Background(), "auth0|owner", false)
	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, http.MethodPatch, stub.lastMethod)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(stub.lastBody, &sent))
	assert.Equal(t, false, sent["blocked"])
}

func TestClientDeleteRole(t *testing.T) {
	stub := newManagementStub(t)
	client := newTestClient(stub, "")

	err := client.DeleteRole(context.Background(), "rol_1")
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, stub.lastMethod)
	assert.Equal(t, "/roles/rol_1", stub.lastPath)
}
