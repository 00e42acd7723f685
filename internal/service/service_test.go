package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/notifier"
)

const (
	testCallerID    = "auth0|tester"
	testCallerEmail = "tester@example.com"
)

type registrar interface {
	register(r *gin.RouterGroup)
}

// testRouter mounts a handler behind a stand-in for the auth middleware that
// injects a fixed caller identity.
func testRouter(handlers ...registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(ctxKeyUserID, testCallerID)
		c.Set(ctxKeyEmail, testCallerEmail)
		c.Set(ctxKeyName, "Tester")
	})
	for _, h := range handlers {
		h.register(api)
	}
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// stubIdentity is a hand-rolled IdentityAPI fake; tests fill in only the
// methods they exercise.
type stubIdentity struct {
	mu sync.Mutex

	users     map[string]*idp.User
	roles     map[string]*idp.Role
	userRoles map[string][]string

	err error
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		users:     map[string]*idp.User{},
		roles:     map[string]*idp.Role{},
		userRoles: map[string][]string{},
	}
}

func (s *stubIdentity) GetUsers(_ context.Context, page int, perPage int) ([]idp.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if page > 0 {
		return []idp.User{}, nil
	}
	out := make([]idp.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubIdentity) GetUser(_ context.Context, userID string) (*idp.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, idp.ErrNotFound
	}
	return user, nil
}

func (s *stubIdentity) CreateUser(_ context.Context, req idp.CreateUserRequest) (*idp.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user := &idp.User{UserID: "auth0|" + req.Email, Email: req.Email, Name: req.Name}
	s.users[user.UserID] = user
	return user, nil
}

func (s *stubIdentity) UpdateUser(_ context.Context, userID string, req idp.UpdateUserRequest) (*idp.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, idp.ErrNotFound
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	return user, nil
}

func (s *stubIdentity) DeleteUser(_ context.Context, userID string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.users[userID]; !ok {
		return idp.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *stubIdentity) SetUserBlocked(_ context.Context, userID string, blocked bool) (*idp.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, idp.ErrNotFound
	}
	user.Blocked = blocked
	return user, nil
}

func (s *stubIdentity) SendVerificationEmail(_ context.Context, userID string) error {
	if _, ok := s.users[userID]; !ok {
		return idp.ErrNotFound
	}
	return nil
}

func (s *stubIdentity) GetUserRoles(_ context.Context, userID string) ([]idp.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []idp.Role
	for _, roleID := range s.userRoles[userID] {
		if role, ok := s.roles[roleID]; ok {
			out = append(out, *role)
		}
	}
	if out == nil {
		out = []idp.Role{}
	}
	return out, nil
}

func (s *stubIdentity) AssignRoles(_ context.Context, userID string, roleIDs []string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userRoles[userID] = append(s.userRoles[userID], roleIDs...)
	return nil
}

func (s *stubIdentity) RemoveRoles(_ context.Context, userID string, roleIDs []string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	remove := map[string]bool{}
	for _, id := range roleIDs {
		remove[id] = true
	}
	var kept []string
	for _, id := range s.userRoles[userID] {
		if !remove[id] {
			kept = append(kept, id)
		}
	}
	s.userRoles[userID] = kept
	return nil
}

func (s *stubIdentity) GetRoles(_ context.Context) ([]idp.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]idp.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubIdentity) GetRole(_ context.Context, roleID string) (*idp.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	role, ok := s.roles[roleID]
	if !ok {
		return nil, idp.ErrNotFound
	}
	return role, nil
}

func (s *stubIdentity) CreateRole(_ context.Context, name string, description string) (*idp.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	role := &idp.Role{ID: "rol_" + name, Name: name, Description: description}
	s.roles[role.ID] = role
	return role, nil
}

func (s *stubIdentity) UpdateRole(_ context.Context, roleID string, name string, description string) (*idp.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	role, ok := s.roles[roleID]
	if !ok {
		return nil, idp.ErrNotFound
	}
	role.Name = name
	role.Description = description
	return role, nil
}

func (s *stubIdentity) DeleteRole(_ context.Context, roleID string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.roles[roleID]; !ok {
		return idp.ErrNotFound
	}
	delete(s.roles, roleID)
	return nil
}

type notifiedEvent struct {
	kind       string
	id         string
	changeType notifier.ChangeType
}

type stubNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
}

func (s *stubNotifier) record(kind string, id string, changeType notifier.ChangeType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, notifiedEvent{kind: kind, id: id, changeType: changeType})
}

func (s *stubNotifier) RoleUpdate(_ context.Context, role *idp.Role, changeType notifier.ChangeType) error {
	s.record("role", role.ID, changeType)
	return nil
}

func (s *stubNotifier) UserRolesUpdate(_ context.Context, userID string, roleID string, changeType notifier.ChangeType) error {
	s.record("user_roles", userID+":"+roleID, changeType)
	return nil
}

func (s *stubNotifier) ContentUpdate(_ context.Context, kind string, contentID string, changeType notifier.ChangeType) error {
	s.record(kind, contentID, changeType)
	return nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
