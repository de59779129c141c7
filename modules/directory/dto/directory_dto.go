package dto

// GraphUser is a directory profile returned by Microsoft Graph
type GraphUser struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	JobTitle          string `json:"jobTitle,omitempty"`
	Department        string `json:"department,omitempty"`
	OfficeLocation    string `json:"officeLocation,omitempty"`
}

// UserSearchResponse wraps people-search results
type UserSearchResponse struct {
	Users []GraphUser `json:"users"`
	Count int         `json:"count"`
}

// CreateGroupRequest creates or replaces a team group
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Members     []string `json:"members"`
}
