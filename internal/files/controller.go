// Package files orchestrates file create/read/list/publish operations,
// enforcing ownership, hierarchy, and visibility rules over the metadata and
// content stores.
package files

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/pkg/queue"
	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 20

// thumbnailWidths are the supported size variants for image content
// retrieval. They match the widths the background worker generates.
var thumbnailWidths = map[string]bool{"100": true, "250": true, "500": true}

// Controller implements the file access operations. All methods take the
// already-authenticated user; token resolution happens before the controller
// is reached.
type Controller struct {
	meta       metadata.MetadataStore
	contents   content.ContentStore
	dispatcher queue.Dispatcher
}

// NewController creates a file access controller. The dispatcher may be nil,
// in which case image uploads skip thumbnail dispatch.
func NewController(meta metadata.MetadataStore, contents content.ContentStore, dispatcher queue.Dispatcher) *Controller {
	return &Controller{meta: meta, contents: contents, dispatcher: dispatcher}
}

// UploadInput carries a create request. ParentID and Data arrive as strings
// straight off the wire: ParentID is "" or "0" for the root sentinel or a
// file UUID, Data is base64-encoded content.
type UploadInput struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}

// Upload validates and creates a file, folder, or image.
//
// Validation order is fixed, first failure wins: name, type, data presence,
// content encoding, image signature, parent. For non-folders the content is
// written to the content store under a fresh locator before the metadata
// record is inserted; if the insert then fails the blob is orphaned and left
// in place - an accepted leak, preferable to a record referencing content
// that was never written.
//
// For images, a thumbnail job is handed off only after the metadata write
// commits, and a dispatch failure is logged without failing the upload.
func (c *Controller) Upload(ctx context.Context, user *metadata.User, in UploadInput) (*metadata.File, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	if !metadata.ValidFileType(in.Type) {
		return nil, ErrInvalidType
	}

	fileType := metadata.FileType(in.Type)

	var data []byte
	if fileType != metadata.FileTypeFolder {
		if in.Data == "" {
			return nil, ErrMissingData
		}
		var err error
		data, err = base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, ErrInvalidData
		}
		if fileType == metadata.FileTypeImage && !hasImageSignature(data) {
			return nil, ErrInvalidImageData
		}
	}

	parent, err := c.resolveParent(ctx, user, in.ParentID)
	if err != nil {
		return nil, err
	}

	record := &metadata.File{
		UserID:   user.ID,
		Name:     in.Name,
		Type:     fileType,
		Parent:   parent,
		IsPublic: in.IsPublic,
	}

	if fileType == metadata.FileTypeFolder {
		return c.meta.CreateFile(ctx, record)
	}

	// Content first, then metadata: a failed content write must leave no
	// record behind, while the reverse order could commit a record whose
	// locator points at nothing.
	locator := uuid.NewString()
	if err := c.contents.Write(ctx, locator, data); err != nil {
		return nil, err
	}
	record.Locator = locator

	created, err := c.meta.CreateFile(ctx, record)
	if err != nil {
		// The blob written above is now orphaned. No cleanup is attempted.
		return nil, err
	}

	if fileType == metadata.FileTypeImage && c.dispatcher != nil {
		job := queue.FileJob{UserID: user.ID, FileID: created.ID}
		if err := c.dispatcher.EnqueueFile(ctx, job); err != nil {
			logger.Warn("Failed to enqueue thumbnail job for file %s: %v", created.ID, err)
		}
	}

	return created, nil
}

// resolveParent validates a parent reference for upload. An empty or "0"
// reference is the root sentinel. Anything else must name an existing folder
// owned by the caller; an unparsable id reads the same as a missing parent.
func (c *Controller) resolveParent(ctx context.Context, user *metadata.User, parentID string) (metadata.ParentRef, error) {
	if parentID == "" || parentID == "0" {
		return metadata.RootParent(), nil
	}

	id, err := uuid.Parse(parentID)
	if err != nil {
		return metadata.ParentRef{}, ErrParentNotFound
	}

	parent, err := c.meta.GetFile(ctx, id)
	if err != nil {
		if metadata.IsNotFound(err) {
			return metadata.ParentRef{}, ErrParentNotFound
		}
		return metadata.ParentRef{}, err
	}
	if parent.UserID != user.ID {
		return metadata.ParentRef{}, ErrParentNotFound
	}
	if parent.Type != metadata.FileTypeFolder {
		return metadata.ParentRef{}, ErrParentNotFolder
	}
	return metadata.FolderParent(parent.ID), nil
}

// Show returns a single file owned by the caller. Ownership is mandatory
// here regardless of the file's visibility; a file that exists but belongs
// to someone else reads as absent.
func (c *Controller) Show(ctx context.Context, user *metadata.User, fileID string) (*metadata.File, error) {
	file, err := c.getOwned(ctx, user, fileID)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// List returns one page of the caller's files under the given parent,
// newest first. The root sentinel matches exactly: files in subfolders do
// not appear in a root listing. A page past the end of the data - or a
// parent reference that cannot name anything - yields an empty list, never
// an error.
func (c *Controller) List(ctx context.Context, user *metadata.User, parentID string, page int) ([]*metadata.File, error) {
	if page < 0 {
		page = 0
	}

	parent := metadata.RootParent()
	if parentID != "" && parentID != "0" {
		id, err := uuid.Parse(parentID)
		if err != nil {
			return []*metadata.File{}, nil
		}
		parent = metadata.FolderParent(id)
	}

	return c.meta.ListFiles(ctx, user.ID, parent, page, PageSize)
}

// SetPublic flips the isPublic flag on a file owned by the caller and
// returns the updated record. Setting the current value again is a no-op
// that still succeeds.
func (c *Controller) SetPublic(ctx context.Context, user *metadata.User, fileID string, public bool) (*metadata.File, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	file, err := c.meta.SetFilePublic(ctx, user.ID, id, public)
	if err != nil {
		if metadata.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// ContentResult is a served blob plus the response shaping derived from the
// file record.
type ContentResult struct {
	// Data is the raw content.
	Data []byte

	// MIMEType is derived from the file name's extension.
	MIMEType string

	// Attachment marks the response as a download rather than inline
	// display. Set for every non-image type.
	Attachment bool

	// Name is the file's name, used for the download filename.
	Name string
}

// Content serves a file's bytes, or a thumbnail variant when size is given.
//
// The caller may be unauthenticated (user == nil): public files are served
// to anyone, while a private file reads as absent unless the caller owns it.
// A size request must name a supported width and only applies to images; the
// variant locator is derived from the base locator, and a variant the worker
// has not produced yet is a plain not-found, never a blocking wait.
func (c *Controller) Content(ctx context.Context, user *metadata.User, fileID, size string) (*ContentResult, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	file, err := c.meta.GetFile(ctx, id)
	if err != nil {
		if metadata.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if file.Type == metadata.FileTypeFolder {
		return nil, ErrFolderHasNoContent
	}

	if !file.IsPublic {
		if user == nil || user.ID != file.UserID {
			return nil, ErrNotFound
		}
	}

	locator := file.Locator
	if size != "" {
		if !thumbnailWidths[size] {
			return nil, ErrInvalidSize
		}
		if file.Type != metadata.FileTypeImage {
			return nil, ErrSizeNotImage
		}
		locator = file.Locator + "_" + size
	}

	data, err := c.contents.Read(ctx, locator)
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &ContentResult{
		Data:       data,
		MIMEType:   mimeType,
		Attachment: file.Type != metadata.FileTypeImage,
		Name:       file.Name,
	}, nil
}

// getOwned fetches a file and enforces ownership, folding parse failures,
// absence, and foreign ownership into the same not-found outcome.
func (c *Controller) getOwned(ctx context.Context, user *metadata.User, fileID string) (*metadata.File, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	file, err := c.meta.GetFile(ctx, id)
	if err != nil {
		if metadata.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.UserID != user.ID {
		return nil, ErrNotFound
	}
	return file, nil
}
