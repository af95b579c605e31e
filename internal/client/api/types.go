package api

import (
	"context"
	"encoding/json"
	"io"
)

// Person identifies a user referenced by a resource (owner, author, actor).
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PathRef is an attachment's folder membership. The server sends it either as
// a plain string ("/contracts") or as a structured object ({id, name}).
type PathRef struct {
	Raw  string
	ID   int64
	Name string
	// structured reports which of the two wire forms was received.
	structured bool
}

func (p *PathRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.Raw = s
		p.structured = false
		return nil
	}
	var obj struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		ParentID int64  `json:"parentId"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.ID = obj.ID
	p.Name = obj.Name
	p.structured = true
	return nil
}

func (p PathRef) MarshalJSON() ([]byte, error) {
	if p.structured {
		return json.Marshal(struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}{ID: p.ID, Name: p.Name})
	}
	return json.Marshal(p.Raw)
}

// Folder returns the bare folder name, regardless of wire form.
func (p PathRef) Folder() string {
	if p.structured {
		return p.Name
	}
	return p.Raw
}

// Resolve renders the path for display, defaulting to "/".
func (p PathRef) Resolve() string {
	if p.structured {
		if p.Name == "" {
			return "/"
		}
		return "/" + p.Name
	}
	if p.Raw == "" {
		return "/"
	}
	return p.Raw
}

// AttachmentItem is one stored file as the server models it.
type AttachmentItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Size       int64   `json:"size"`
	Mime       string  `json:"mime"`
	StorageKey string  `json:"storageKey"`
	StorageURL string  `json:"storageUrl"`
	Path       PathRef `json:"path"`
	Owner      *Person `json:"owner"`
	CreatedBy  *Person `json:"createdBy"`
	UpdatedBy  *Person `json:"updatedBy"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// DirectoryItem is a virtual folder. Folders are derived server-side from
// attachment paths and are not modeled as rows with identifiers.
type DirectoryItem struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	DiskPath  string  `json:"diskPath"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	CreatedBy *Person `json:"createdBy"`
}

// Meta is pagination metadata echoed or derived from the server.
type Meta struct {
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// PaginatedAttachments is the canonical shape every attachment listing is
// normalized into, whatever envelope the deployment fronts it with.
type PaginatedAttachments struct {
	Data        []AttachmentItem `json:"data"`
	Directories []DirectoryItem  `json:"directories"`
	Meta        Meta             `json:"meta"`
}

// RemarkItem is one comment left on an attachment.
type RemarkItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	AttachmentID int64   `json:"attachmentId"`
	User         *Person `json:"user"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// PaginatedRemarks is the canonical remark listing shape.
type PaginatedRemarks struct {
	Data []RemarkItem `json:"data"`
	Meta Meta         `json:"meta"`
}

// AttachmentLog is one activity-log line of an attachment.
type AttachmentLog struct {
	ID        int64   `json:"id"`
	Action    string  `json:"action"`
	Detail    string  `json:"detail"`
	User      *Person `json:"user"`
	CreatedAt string  `json:"createdAt"`
}

// AttachmentDetail is the detail view: the attachment plus its activity log.
type AttachmentDetail struct {
	Attachment AttachmentItem `json:"attachment"`
	Logs       struct {
		Data []AttachmentLog `json:"data"`
		Meta Meta            `json:"meta"`
	} `json:"logs"`
}

// User is the authenticated identity.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthPayload is a normalized login response. AccessToken may be empty when
// the deployment relies on session cookies only.
type AuthPayload struct {
	AccessToken string `json:"accessToken,omitempty"`
	User        User   `json:"user"`
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListOptions selects a subset of the attachment collection. Zero values are
// omitted from the query string.
type ListOptions struct {
	Limit     int
	Page      int
	SortBy    string
	SortOrder string
	PathID    int64
	Search    string
	Folder    string
}

// UploadFile is one file payload in an upload batch.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadOptions describes a multipart upload of one or more files.
type UploadOptions struct {
	Files  []UploadFile
	Folder string
	Name   string
}

// UpdatePayload carries only the fields being changed; nil fields are
// omitted from the request body, never sent as no-ops.
type UpdatePayload struct {
	Name   *string `json:"name,omitempty"`
	Folder *string `json:"folder,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p UpdatePayload) Empty() bool {
	return p.Name == nil && p.Folder == nil
}

// CreateRemarkPayload creates one remark on an attachment.
type CreateRemarkPayload struct {
	AttachmentID int64  `json:"attachmentId"`
	Title        string `json:"title"`
	Message      string `json:"message"`
}

// Client is the remote resource client consumed by the collection controller
// and the mutation coordinator. All methods honor context cancellation.
type Client interface {
	ListAttachments(ctx context.Context, opts ListOptions) (PaginatedAttachments, error)
	GetAttachment(ctx context.Context, id int64) (AttachmentDetail, error)
	UploadAttachments(ctx context.Context, opts UploadOptions) ([]AttachmentItem, error)
	UpdateAttachment(ctx context.Context, id int64, patch UpdatePayload) (AttachmentItem, error)
	DeleteAttachment(ctx context.Context, id int64) error
	DeleteDirectory(ctx context.Context, folder string) error
	CreateFolder(ctx context.Context, folder string) (AttachmentItem, error)
	ListRemarks(ctx context.Context, attachmentID int64, page, limit int) (PaginatedRemarks, error)
	CreateRemark(ctx context.Context, payload CreateRemarkPayload) error
	Login(ctx context.Context, creds Credentials) (AuthPayload, error)
	Logout(ctx context.Context) error
}
