// Package actions coordinates mutations on the attachment collection:
// delete, rename, move, upload, folder creation and remarks. Every mutation
// follows the same shape: mark the target pending, call the API, notify the
// outcome, and on success trigger one refetch of the active view. The
// refetch is the single reconciliation point; rows are never patched
// locally.
package actions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/client/collection"
	"github.com/dspavlov/docshelf/internal/client/notify"
	"github.com/dspavlov/docshelf/internal/common"
	"github.com/dspavlov/docshelf/internal/logging"
)

// ErrPending reports a mutation rejected because the same row already has
// one in flight.
var ErrPending = fmt.Errorf("operation already in progress for this item")

// Refresher triggers a refetch of the active collection view. The collection
// controller satisfies it.
type Refresher interface {
	Refresh(ctx context.Context)
}

// UploadResult is the outcome of one upload batch.
type UploadResult struct {
	BatchID string
	Items   []api.AttachmentItem
}

// Coordinator runs mutations against the API on behalf of the table.
type Coordinator struct {
	client   api.Client
	notifier notify.Notifier
	view     Refresher
	log      logging.Logger

	mu      sync.Mutex
	pending map[int64]struct{}
}

// NewCoordinator builds a Coordinator reconciling through view.
func NewCoordinator(client api.Client, notifier notify.Notifier, view Refresher, log logging.Logger) *Coordinator {
	return &Coordinator{
		client:   client,
		notifier: notifier,
		view:     view,
		log:      log,
		pending:  make(map[int64]struct{}),
	}
}

// Pending reports whether the row has a mutation in flight. The table uses
// it to render the row disabled.
func (c *Coordinator) Pending(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

func (c *Coordinator) begin(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[id]; ok {
		return ErrPending
	}
	c.pending[id] = struct{}{}
	return nil
}

func (c *Coordinator) end(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

// Delete removes a file or a folder row. Folder rows are addressed by name;
// deleting a folder removes everything under it.
func (c *Coordinator) Delete(ctx context.Context, row collection.Row) error {
	if err := c.begin(row.ID); err != nil {
		return err
	}
	defer c.end(row.ID)

	var err error
	if row.IsFolder() {
		err = c.client.DeleteDirectory(ctx, row.Name)
	} else {
		err = c.client.DeleteAttachment(ctx, row.ID)
	}
	if err != nil {
		return c.fail(err, "Delete failed")
	}

	notify.Success(c.notifier, "Deleted", fmt.Sprintf("%q was deleted", row.Name))
	c.view.Refresh(ctx)
	return nil
}

// Rename changes an attachment's display name.
func (c *Coordinator) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	patch := api.UpdatePayload{Name: &name}
	return c.update(ctx, id, patch, "Renamed", fmt.Sprintf("renamed to %q", name))
}

// Move relocates an attachment into folder; an empty folder means the root.
func (c *Coordinator) Move(ctx context.Context, id int64, folder string) error {
	folder = strings.TrimSpace(folder)
	patch := api.UpdatePayload{Folder: &folder}
	return c.update(ctx, id, patch, "Moved", fmt.Sprintf("moved to %q", displayFolder(folder)))
}

func (c *Coordinator) update(ctx context.Context, id int64, patch api.UpdatePayload, title, message string) error {
	if patch.Empty() {
		return nil
	}
	if err := c.begin(id); err != nil {
		return err
	}
	defer c.end(id)

	if _, err := c.client.UpdateAttachment(ctx, id, patch); err != nil {
		return c.fail(err, "Update failed")
	}
	notify.Success(c.notifier, title, message)
	c.view.Refresh(ctx)
	return nil
}

// Upload sends the staged selection as one multipart batch into folder.
func (c *Coordinator) Upload(ctx context.Context, sel *Selection, folder string) (UploadResult, error) {
	files := sel.Files()
	if len(files) == 0 {
		return UploadResult{}, fmt.Errorf("%w: no files selected", common.ErrValidation)
	}

	batch := uuid.NewString()
	if c.log != nil {
		c.log.Info(ctx, "uploading batch", "batch", batch, "files", len(files), "folder", folder)
	}

	items, err := c.client.UploadAttachments(ctx, api.UploadOptions{Files: files, Folder: folder})
	if err != nil {
		return UploadResult{}, c.fail(err, "Upload failed")
	}

	sel.Clear()
	notify.Success(c.notifier, "Uploaded", fmt.Sprintf("%d file(s) uploaded", len(files)))
	c.view.Refresh(ctx)
	return UploadResult{BatchID: batch, Items: items}, nil
}

// CreateFolder creates an empty virtual folder.
func (c *Coordinator) CreateFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: folder name must not be empty", common.ErrValidation)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: folder name must not contain path separators", common.ErrValidation)
	}

	if _, err := c.client.CreateFolder(ctx, name); err != nil {
		return c.fail(err, "Create folder failed")
	}
	notify.Success(c.notifier, "Folder created", fmt.Sprintf("%q was created", name))
	c.view.Refresh(ctx)
	return nil
}

// AddRemark leaves a comment on an attachment. Remarks do not alter the
// table, so no refetch follows.
func (c *Coordinator) AddRemark(ctx context.Context, attachmentID int64, title, message string) error {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return fmt.Errorf("%w: remark title and message are required", common.ErrValidation)
	}

	payload := api.CreateRemarkPayload{AttachmentID: attachmentID, Title: title, Message: message}
	if err := c.client.CreateRemark(ctx, payload); err != nil {
		return c.fail(err, "Remark failed")
	}
	notify.Success(c.notifier, "Remark added", title)
	return nil
}

// fail converts err into a notification unless the caller abandoned the
// request, then passes it through.
func (c *Coordinator) fail(err error, title string) error {
	if api.IsCancelled(err) {
		return err
	}
	notify.Error(c.notifier, title, api.UserMessage(err))
	return err
}

func displayFolder(folder string) string {
	if folder == "" {
		return "/"
	}
	return folder
}
