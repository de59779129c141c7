package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/core/utils"
	"meeting-optimizer-api/modules/directory/dto"
	"meeting-optimizer-api/modules/directory/entity"
	"meeting-optimizer-api/modules/directory/repository"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds the fan-out when resolving emails to profiles
const resolveConcurrency = 4

// DirectoryServiceInterface supplies requester identity, people search and
// team groups to the scheduling flow.
type DirectoryServiceInterface interface {
	GetMe(ctx context.Context, accessToken string) (*dto.GraphUser, *errors.AppError)
	RequesterDomain(ctx context.Context, accessToken string) string
	SearchUsers(ctx context.Context, accessToken, query string) (*dto.UserSearchResponse, *errors.AppError)
	ResolveProfiles(ctx context.Context, accessToken string, emails []string) map[string]dto.GraphUser

	ListGroups(ctx context.Context) ([]entity.TeamGroup, *errors.AppError)
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*entity.TeamGroup, *errors.AppError)
	GetGroupMembers(ctx context.Context, id string) ([]string, *errors.AppError)
}

type DirectoryService struct {
	repo    repository.TeamGroupRepositoryInterface
	baseURL string
	client  *http.Client
}

func NewDirectoryService(repo repository.TeamGroupRepositoryInterface) DirectoryServiceInterface {
	return &DirectoryService{
		repo:    repo,
		baseURL: constants.GraphBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewDirectoryServiceWithBaseURL is used by tests to point at a stub server
func NewDirectoryServiceWithBaseURL(repo repository.TeamGroupRepositoryInterface, baseURL string, client *http.Client) DirectoryServiceInterface {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &DirectoryService{repo: repo, baseURL: baseURL, client: client}
}

// GetMe fetches the signed-in user's Graph profile
func (s *DirectoryService) GetMe(ctx context.Context, accessToken string) (*dto.GraphUser, *errors.AppError) {
	var user dto.GraphUser
	if err := s.graphGet(ctx, accessToken, "/me", nil, &user); err != nil {
		return nil, errors.NewAppError(errors.ErrGraphAPIError, "failed to retrieve user profile", err)
	}
	return &user, nil
}

// RequesterDomain returns the email domain of the signed-in user, or "" when
// the profile lookup fails. An empty domain classifies every attendee as
// external downstream.
func (s *DirectoryService) RequesterDomain(ctx context.Context, accessToken string) string {
	user, appErr := s.GetMe(ctx, accessToken)
	if appErr != nil {
		logger.Warn("Directory:RequesterDomain:ProfileLookupFailed", "error", appErr)
		return ""
	}

	email := user.Mail
	if email == "" {
		email = user.UserPrincipalName
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

// SearchUsers queries the directory by display name or email. It tries the
// $search syntax first and falls back to $filter startswith when the tenant
// rejects it.
func (s *DirectoryService) SearchUsers(ctx context.Context, accessToken, query string) (*dto.UserSearchResponse, *errors.AppError) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "search query must not be empty", nil)
	}

	type userList struct {
		Value []dto.GraphUser `json:"value"`
	}

	var result userList
	searchParams := url.Values{}
	searchParams.Set("$search", fmt.Sprintf("%q", "displayName:"+query))
	searchParams.Set("$top", "10")
	searchParams.Set("$select", "id,displayName,mail,userPrincipalName,jobTitle,department,officeLocation")

	err := s.graphGet(ctx, accessToken, "/users?"+searchParams.Encode(),
		map[string]string{"ConsistencyLevel": "eventual"}, &result)
	if err != nil {
		logger.Warn("Directory:SearchUsers:SearchRejected", "query", query, "error", err)

		escaped := strings.ReplaceAll(query, "'", "''")
		filterParams := url.Values{}
		filterParams.Set("$filter", fmt.Sprintf(
			"startswith(displayName,'%s') or startswith(mail,'%s') or startswith(userPrincipalName,'%s')",
			escaped, escaped, escaped))
		filterParams.Set("$top", "10")
		filterParams.Set("$select", "id,displayName,mail,userPrincipalName,jobTitle,department,officeLocation")

		if err := s.graphGet(ctx, accessToken, "/users?"+filterParams.Encode(), nil, &result); err != nil {
			return nil, errors.NewAppError(errors.ErrGraphAPIError, "user search failed", err)
		}
	}

	return &dto.UserSearchResponse{Users: result.Value, Count: len(result.Value)}, nil
}

// ResolveProfiles fetches directory profiles for a list of emails with a
// bounded concurrent fan-out. Best effort: unresolvable emails are simply
// absent from the result.
func (s *DirectoryService) ResolveProfiles(ctx context.Context, accessToken string, emails []string) map[string]dto.GraphUser {
	profiles := make(map[string]dto.GraphUser, len(emails))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for _, email := range emails {
		g.Go(func() error {
			var user dto.GraphUser
			path := "/users/" + url.PathEscape(email)
			if err := s.graphGet(gctx, accessToken, path, nil, &user); err != nil {
				logger.Debug("Directory:ResolveProfiles:Miss", "email", email, "error", err)
				return nil
			}
			mu.Lock()
			profiles[email] = user
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return profiles
}

// ListGroups returns all stored team groups
func (s *DirectoryService) ListGroups(ctx context.Context) ([]entity.TeamGroup, *errors.AppError) {
	groups, err := s.repo.GetGroups(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list team groups", err)
	}
	return groups, nil
}

// CreateGroup creates or replaces a team group, keyed by a slug of its name
func (s *DirectoryService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*entity.TeamGroup, *errors.AppError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "group name must not be empty", nil)
	}

	id := slug.Make(req.Name)
	if id == "" {
		id = utils.GenerateID()
	}

	group := &entity.TeamGroup{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Members:     req.Members,
	}

	created, err := s.repo.CreateGroup(ctx, group)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create team group", err)
	}
	return created, nil
}

// GetGroupMembers returns the member emails of one team group
func (s *DirectoryService) GetGroupMembers(ctx context.Context, id string) ([]string, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get team group", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "team group not found", nil)
	}
	return group.Members, nil
}

func (s *DirectoryService) graphGet(ctx context.Context, accessToken, path string, headers map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph request to %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
