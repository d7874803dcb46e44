package directory

// RawGroupResponse is the merged, unvalidated view of a directory group.
type RawGroupResponse struct {
	ID          *string
	DisplayName *string
	Description *string
	Mail        *string
	Members     []RawMember
}

// RawMember is one entry of the group membership as returned by Graph.
// Members that are not users (devices, service principals) usually have no mail.
type RawMember struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Mail        *string `json:"mail"`
}

// groupPayload is the body of GET /groups/{id}.
type groupPayload struct {
	ID          *string `json:"id"`
	DisplayName *string `json:"displayName"`
	Description *string `json:"description"`
	Mail        *string `json:"mail"`
}

// membersPage is one page of GET /groups/{id}/members.
type membersPage struct {
	Value    []RawMember `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}
