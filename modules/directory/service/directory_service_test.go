package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/modules/directory/dto"
	"meeting-optimizer-api/modules/directory/entity"
)

type fakeRepo struct {
	mu     sync.Mutex
	groups map[string]entity.TeamGroup
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{groups: make(map[string]entity.TeamGroup)}
}

func (f *fakeRepo) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeRepo) CreateGroup(ctx context.Context, group *entity.TeamGroup) (*entity.TeamGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	f.groups[group.ID] = *group
	return group, nil
}

func (f *fakeRepo) GetGroups(ctx context.Context) ([]entity.TeamGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.TeamGroup, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeRepo) GetGroupByID(ctx context.Context, id string) (*entity.TeamGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (f *fakeRepo) CountGroups(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.groups), nil
}

func TestRequesterDomain(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		status  int
		want    string
	}{
		{
			name:    "mail preferred",
			profile: `{"id":"1","mail":"pat@contoso.com","userPrincipalName":"pat@contoso.onmicrosoft.com"}`,
			status:  http.StatusOK,
			want:    "contoso.com",
		},
		{
			name:    "falls back to user principal name",
			profile: `{"id":"1","mail":"","userPrincipalName":"pat@contoso.onmicrosoft.com"}`,
			status:  http.StatusOK,
			want:    "contoso.onmicrosoft.com",
		},
		{
			name:    "lookup failure yields empty domain",
			profile: `{"error":{"code":"InvalidAuthenticationToken"}}`,
			status:  http.StatusUnauthorized,
			want:    "",
		},
		{
			name:    "profile without any address",
			profile: `{"id":"1"}`,
			status:  http.StatusOK,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.profile))
			}))
			defer stub.Close()

			svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), stub.URL, stub.Client())
			assert.Equal(t, tt.want, svc.RequesterDomain(context.Background(), "token"))
		})
	}
}

func TestSearchUsers_FallsBackToFilter(t *testing.T) {
	var searchCalls, filterCalls int32
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$search") != "" {
			atomic.AddInt32(&searchCalls, 1)
			assert.Equal(t, "eventual", r.Header.Get("ConsistencyLevel"))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"Request_UnsupportedQuery"}}`))
			return
		}
		atomic.AddInt32(&filterCalls, 1)
		assert.Contains(t, r.URL.Query().Get("$filter"), "startswith(displayName,'Pat')")
		w.Write([]byte(`{"value":[{"id":"1","displayName":"Pat Example","mail":"pat@contoso.com"}]}`))
	}))
	defer stub.Close()

	svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), stub.URL, stub.Client())

	result, appErr := svc.SearchUsers(context.Background(), "token", "Pat")

	require.Nil(t, appErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&searchCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&filterCalls))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "Pat Example", result.Users[0].DisplayName)
}

func TestSearchUsers_EmptyQuery(t *testing.T) {
	svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), "http://unused.invalid", nil)

	result, appErr := svc.SearchUsers(context.Background(), "token", "   ")

	assert.Nil(t, result)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestResolveProfiles(t *testing.T) {
	var inFlight, peak int32
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		defer atomic.AddInt32(&inFlight, -1)

		email := strings.TrimPrefix(r.URL.Path, "/users/")
		if email == "missing@contoso.com" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id":"x","displayName":"Resolved","mail":"` + email + `"}`))
	}))
	defer stub.Close()

	svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), stub.URL, stub.Client())

	emails := []string{
		"a@contoso.com", "b@contoso.com", "c@contoso.com",
		"d@contoso.com", "e@contoso.com", "missing@contoso.com",
	}
	profiles := svc.ResolveProfiles(context.Background(), "token", emails)

	assert.Len(t, profiles, 5)
	assert.NotContains(t, profiles, "missing@contoso.com")
	assert.Equal(t, "Resolved", profiles["a@contoso.com"].DisplayName)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(resolveConcurrency))
}

func TestCreateGroup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDirectoryServiceWithBaseURL(repo, "http://unused.invalid", nil)

	group, appErr := svc.CreateGroup(context.Background(), &dto.CreateGroupRequest{
		Name:    "Legal Team",
		Color:   "#0078d4",
		Members: []string{"counsel@contoso.com"},
	})

	require.Nil(t, appErr)
	assert.Equal(t, "legal-team", group.ID)
	assert.Equal(t, "Legal Team", group.Name)

	members, appErr := svc.GetGroupMembers(context.Background(), "legal-team")
	require.Nil(t, appErr)
	assert.Equal(t, []string{"counsel@contoso.com"}, members)
}

func TestCreateGroup_EmptyName(t *testing.T) {
	svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), "http://unused.invalid", nil)

	_, appErr := svc.CreateGroup(context.Background(), &dto.CreateGroupRequest{Name: "  "})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetGroupMembers_NotFound(t *testing.T) {
	svc := NewDirectoryServiceWithBaseURL(newFakeRepo(), "http://unused.invalid", nil)

	_, appErr := svc.GetGroupMembers(context.Background(), "nope")

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
