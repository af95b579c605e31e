package actions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/client/collection"
	"github.com/dspavlov/docshelf/internal/client/notify"
	"github.com/dspavlov/docshelf/internal/common"
)

type fakeClient struct {
	mu sync.Mutex

	deleteErr      error
	deletedFiles   []int64
	deletedFolders []string

	updateErr error
	updates   map[int64]api.UpdatePayload

	uploadErr error
	uploaded  []api.UploadOptions

	createdFolders []string
	remarks        []api.CreateRemarkPayload

	block chan struct{}
}

func (f *fakeClient) DeleteAttachment(ctx context.Context, id int64) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedFiles = append(f.deletedFiles, id)
	return nil
}

func (f *fakeClient) DeleteDirectory(ctx context.Context, folder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedFolders = append(f.deletedFolders, folder)
	return nil
}

func (f *fakeClient) UpdateAttachment(ctx context.Context, id int64, patch api.UpdatePayload) (api.AttachmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return api.AttachmentItem{}, f.updateErr
	}
	if f.updates == nil {
		f.updates = make(map[int64]api.UpdatePayload)
	}
	f.updates[id] = patch
	return api.AttachmentItem{ID: id}, nil
}

func (f *fakeClient) UploadAttachments(ctx context.Context, opts api.UploadOptions) ([]api.AttachmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploaded = append(f.uploaded, opts)
	items := make([]api.AttachmentItem, len(opts.Files))
	return items, nil
}

func (f *fakeClient) CreateFolder(ctx context.Context, folder string) (api.AttachmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdFolders = append(f.createdFolders, folder)
	return api.AttachmentItem{Name: folder, Kind: "folder"}, nil
}

func (f *fakeClient) CreateRemark(ctx context.Context, payload api.CreateRemarkPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remarks = append(f.remarks, payload)
	return nil
}

func (f *fakeClient) ListAttachments(ctx context.Context, opts api.ListOptions) (api.PaginatedAttachments, error) {
	return api.PaginatedAttachments{}, nil
}
func (f *fakeClient) GetAttachment(ctx context.Context, id int64) (api.AttachmentDetail, error) {
	return api.AttachmentDetail{}, nil
}
func (f *fakeClient) ListRemarks(ctx context.Context, attachmentID int64, page, limit int) (api.PaginatedRemarks, error) {
	return api.PaginatedRemarks{}, nil
}
func (f *fakeClient) Login(ctx context.Context, creds api.Credentials) (api.AuthPayload, error) {
	return api.AuthPayload{}, nil
}
func (f *fakeClient) Logout(ctx context.Context) error { return nil }

var _ api.Client = (*fakeClient)(nil)

type fakeView struct {
	refreshes atomic.Int64
}

func (v *fakeView) Refresh(ctx context.Context) { v.refreshes.Add(1) }

func fileRow(id int64, name string) collection.Row {
	return collection.Row{ID: id, Name: name, Kind: collection.KindFile}
}

func folderRow(id int64, name string) collection.Row {
	return collection.Row{ID: id, Name: name, Kind: collection.KindFolder}
}

func TestDeleteDispatchesByRowKind(t *testing.T) {
	client := &fakeClient{}
	view := &fakeView{}
	rec := &notify.Recorder{}
	c := NewCoordinator(client, rec, view, nil)
	ctx := context.Background()

	require.NoError(t, c.Delete(ctx, fileRow(7, "report.pdf")))
	require.NoError(t, c.Delete(ctx, folderRow(-1, "contracts")))

	assert.Equal(t, []int64{7}, client.deletedFiles)
	assert.Equal(t, []string{"contracts"}, client.deletedFolders)
	assert.Equal(t, int64(2), view.refreshes.Load(), "each success reconciles via refetch")
	assert.Len(t, rec.ByKind(notify.KindSuccess), 2)
}

func TestDeleteFailureNotifiesAndSkipsRefetch(t *testing.T) {
	client := &fakeClient{deleteErr: &api.APIError{Status: 403, Message: "not yours"}}
	view := &fakeView{}
	rec := &notify.Recorder{}
	c := NewCoordinator(client, rec, view, nil)

	err := c.Delete(context.Background(), fileRow(7, "report.pdf"))
	require.Error(t, err)

	assert.Equal(t, int64(0), view.refreshes.Load(), "failed mutations must not refetch")
	errs := rec.ByKind(notify.KindError)
	require.Len(t, errs, 1)
	assert.Equal(t, "not yours", errs[0].Message)
	assert.False(t, c.Pending(7), "pending cleared on failure too")
}

func TestPendingBlocksConcurrentMutationOnSameRow(t *testing.T) {
	client := &fakeClient{block: make(chan struct{})}
	view := &fakeView{}
	c := NewCoordinator(client, &notify.Recorder{}, view, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Delete(ctx, fileRow(7, "report.pdf")) }()
	require.Eventually(t, func() bool { return c.Pending(7) }, 5*time.Second, time.Millisecond)

	err := c.Delete(ctx, fileRow(7, "report.pdf"))
	assert.ErrorIs(t, err, ErrPending)

	close(client.block)
	require.NoError(t, <-done)
	assert.False(t, c.Pending(7))
}

func TestRenameSendsOnlyChangedField(t *testing.T) {
	client := &fakeClient{}
	view := &fakeView{}
	c := NewCoordinator(client, &notify.Recorder{}, view, nil)

	require.NoError(t, c.Rename(context.Background(), 5, "renamed.pdf"))

	patch := client.updates[5]
	require.NotNil(t, patch.Name)
	assert.Equal(t, "renamed.pdf", *patch.Name)
	assert.Nil(t, patch.Folder, "untouched fields stay out of the patch")
	assert.Equal(t, int64(1), view.refreshes.Load())
}

func TestRenameRejectsEmptyName(t *testing.T) {
	client := &fakeClient{}
	c := NewCoordinator(client, &notify.Recorder{}, &fakeView{}, nil)

	err := c.Rename(context.Background(), 5, "   ")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, client.updates)
}

func TestMoveToRootSendsEmptyFolder(t *testing.T) {
	client := &fakeClient{}
	c := NewCoordinator(client, &notify.Recorder{}, &fakeView{}, nil)

	require.NoError(t, c.Move(context.Background(), 5, ""))

	patch := client.updates[5]
	require.NotNil(t, patch.Folder)
	assert.Equal(t, "", *patch.Folder)
	assert.Nil(t, patch.Name)
}

func TestUploadSendsBatchAndClearsSelection(t *testing.T) {
	client := &fakeClient{}
	view := &fakeView{}
	rec := &notify.Recorder{}
	c := NewCoordinator(client, rec, view, nil)

	sel := NewSelection()
	require.NoError(t, sel.Add("a.pdf", strings.NewReader("aa")))
	require.NoError(t, sel.Add("b.pdf", strings.NewReader("bb")))

	res, err := c.Upload(context.Background(), sel, "contracts")
	require.NoError(t, err)
	assert.NotEmpty(t, res.BatchID)
	assert.Len(t, res.Items, 2)

	require.Len(t, client.uploaded, 1)
	assert.Equal(t, "contracts", client.uploaded[0].Folder)
	assert.Len(t, client.uploaded[0].Files, 2)
	assert.Equal(t, 0, sel.Len(), "selection empties after a successful batch")
	assert.Equal(t, int64(1), view.refreshes.Load())
}

func TestUploadEmptySelectionIsValidationError(t *testing.T) {
	client := &fakeClient{}
	c := NewCoordinator(client, &notify.Recorder{}, &fakeView{}, nil)

	_, err := c.Upload(context.Background(), NewSelection(), "")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, client.uploaded)
}

func TestUploadFailureKeepsSelection(t *testing.T) {
	client := &fakeClient{uploadErr: errors.New("disk full")}
	c := NewCoordinator(client, &notify.Recorder{}, &fakeView{}, nil)

	sel := NewSelection()
	require.NoError(t, sel.Add("a.pdf", strings.NewReader("aa")))

	_, err := c.Upload(context.Background(), sel, "")
	require.Error(t, err)
	assert.Equal(t, 1, sel.Len(), "a failed batch can be retried as-is")
}

func TestCreateFolderValidation(t *testing.T) {
	client := &fakeClient{}
	c := NewCoordinator(client, &notify.Recorder{}, &fakeView{}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, c.CreateFolder(ctx, ""), common.ErrValidation)
	assert.ErrorIs(t, c.CreateFolder(ctx, "a/b"), common.ErrValidation)
	require.NoError(t, c.CreateFolder(ctx, "legal"))
	assert.Equal(t, []string{"legal"}, client.createdFolders)
}

func TestAddRemarkDoesNotRefetch(t *testing.T) {
	client := &fakeClient{}
	view := &fakeView{}
	c := NewCoordinator(client, &notify.Recorder{}, view, nil)
	ctx := context.Background()

	assert.ErrorIs(t, c.AddRemark(ctx, 7, "", "body"), common.ErrValidation)
	require.NoError(t, c.AddRemark(ctx, 7, "Signed", "countersigned today"))

	require.Len(t, client.remarks, 1)
	assert.Equal(t, int64(7), client.remarks[0].AttachmentID)
	assert.Equal(t, int64(0), view.refreshes.Load())
}

func TestCancelledMutationIsSilent(t *testing.T) {
	client := &fakeClient{deleteErr: context.Canceled}
	rec := &notify.Recorder{}
	c := NewCoordinator(client, rec, &fakeView{}, nil)

	err := c.Delete(context.Background(), fileRow(1, "a.pdf"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.All())
}
