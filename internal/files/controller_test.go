package files

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chineduCoded/alx-files-manager/pkg/queue"
	contentMemory "github.com/chineduCoded/alx-files-manager/pkg/store/content/memory"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	metadataMemory "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/memory"
)

// pngPayload is a minimal buffer carrying the PNG signature.
var pngPayload = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, []byte("fake image bytes")...)

type fixture struct {
	ctrl     *Controller
	meta     metadata.MetadataStore
	contents *contentMemory.MemoryContentStore
	jobs     *queue.MemoryQueue
	user     *metadata.User
	other    *metadata.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	meta := metadataMemory.New()
	contents := contentMemory.New()
	jobs := queue.NewMemoryQueue(8, 8)

	ctx := context.Background()
	user, err := meta.CreateUser(ctx, "bob@dylan.com", "$2b$10$hash")
	require.NoError(t, err)
	other, err := meta.CreateUser(ctx, "eve@dylan.com", "$2b$10$hash")
	require.NoError(t, err)

	return &fixture{
		ctrl:     NewController(meta, contents, jobs),
		meta:     meta,
		contents: contents,
		jobs:     jobs,
		user:     user,
		other:    other,
	}
}

func (f *fixture) upload(t *testing.T, in UploadInput) *metadata.File {
	t.Helper()

	file, err := f.ctrl.Upload(context.Background(), f.user, in)
	require.NoError(t, err)
	return file
}

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func TestUpload_File(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := f.upload(t, UploadInput{
		Name: "hello.txt",
		Type: "file",
		Data: b64([]byte("Hello Webstack!\n")),
	})

	require.Equal(t, f.user.ID, file.UserID)
	require.Equal(t, metadata.FileTypeFile, file.Type)
	require.True(t, file.Parent.IsRoot())
	require.False(t, file.IsPublic)
	require.NotEmpty(t, file.Locator)

	// The decoded bytes are in the content store under the locator
	data, err := f.contents.Read(ctx, file.Locator)
	require.NoError(t, err)
	require.Equal(t, []byte("Hello Webstack!\n"), data)
}

func TestUpload_Folder(t *testing.T) {
	f := newFixture(t)

	folder := f.upload(t, UploadInput{Name: "documents", Type: "folder"})

	require.Equal(t, metadata.FileTypeFolder, folder.Type)
	require.Empty(t, folder.Locator, "folders carry no content")
}

func TestUpload_ValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   UploadInput
		want error
	}{
		{"missing name", UploadInput{Type: "file", Data: b64([]byte("x"))}, ErrMissingName},
		{"missing type", UploadInput{Name: "a.txt", Data: b64([]byte("x"))}, ErrInvalidType},
		{"unknown type", UploadInput{Name: "a.txt", Type: "document", Data: b64([]byte("x"))}, ErrInvalidType},
		{"missing data", UploadInput{Name: "a.txt", Type: "file"}, ErrMissingData},
		{"bad base64", UploadInput{Name: "a.txt", Type: "file", Data: "!!not-base64!!"}, ErrInvalidData},
		{"image without signature", UploadInput{Name: "a.png", Type: "image", Data: b64([]byte("plain text"))}, ErrInvalidImageData},
		{"name beats type", UploadInput{}, ErrMissingName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ctrl.Upload(ctx, f.user, tc.in)
			require.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}

	// None of the failed uploads left a record behind
	count, err := f.meta.CountFiles(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)
}

func TestUpload_ParentRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.upload(t, UploadInput{Name: "docs", Type: "folder"})
	plain := f.upload(t, UploadInput{Name: "plain.txt", Type: "file", Data: b64([]byte("x"))})
	foreign, err := f.ctrl.Upload(ctx, f.other, UploadInput{Name: "theirs", Type: "folder"})
	require.NoError(t, err)

	// A valid parent places the child under it
	child := f.upload(t, UploadInput{
		Name:     "nested.txt",
		Type:     "file",
		ParentID: folder.ID.String(),
		Data:     b64([]byte("y")),
	})
	require.Equal(t, folder.ID, child.Parent.FolderID())

	// "0" and "" are the root sentinel
	rooted := f.upload(t, UploadInput{Name: "root.txt", Type: "file", ParentID: "0", Data: b64([]byte("z"))})
	require.True(t, rooted.Parent.IsRoot())

	// Absent, unparsable, and foreign-owned parents are indistinguishable
	for name, parentID := range map[string]string{
		"absent":     uuid.NewString(),
		"unparsable": "not-a-uuid",
		"foreign":    foreign.ID.String(),
	} {
		_, err := f.ctrl.Upload(ctx, f.user, UploadInput{
			Name: name, Type: "file", ParentID: parentID, Data: b64([]byte("x")),
		})
		require.True(t, errors.Is(err, ErrParentNotFound), "%s parent: got %v", name, err)
	}

	// A non-folder parent is its own failure
	_, err = f.ctrl.Upload(ctx, f.user, UploadInput{
		Name: "child.txt", Type: "file", ParentID: plain.ID.String(), Data: b64([]byte("x")),
	})
	require.True(t, errors.Is(err, ErrParentNotFolder))
}

func TestUpload_ImageDispatchesThumbnailJob(t *testing.T) {
	f := newFixture(t)

	image := f.upload(t, UploadInput{Name: "photo.png", Type: "image", Data: b64(pngPayload)})

	select {
	case job := <-f.jobs.Files():
		require.Equal(t, image.ID, job.FileID)
		require.Equal(t, f.user.ID, job.UserID)
	default:
		t.Fatal("expected a thumbnail job for the image upload")
	}

	// Plain files never dispatch jobs
	f.upload(t, UploadInput{Name: "plain.txt", Type: "file", Data: b64([]byte("x"))})
	select {
	case job := <-f.jobs.Files():
		t.Fatalf("unexpected job: %+v", job)
	default:
	}
}

func TestShow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := f.upload(t, UploadInput{Name: "mine.txt", Type: "file", Data: b64([]byte("x"))})

	got, err := f.ctrl.Show(ctx, f.user, file.ID.String())
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)

	// Foreign owner, unknown id, and unparsable id all read as absent
	_, err = f.ctrl.Show(ctx, f.other, file.ID.String())
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = f.ctrl.Show(ctx, f.user, uuid.NewString())
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = f.ctrl.Show(ctx, f.user, "garbage")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestList_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var names []string
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("file-%03d.txt", i)
		names = append(names, name)
		f.upload(t, UploadInput{Name: name, Type: "file", Data: b64([]byte("x"))})
	}

	page0, err := f.ctrl.List(ctx, f.user, "", 0)
	require.NoError(t, err)
	require.Len(t, page0, PageSize)
	require.Equal(t, names[24], page0[0].Name, "newest first")

	page1, err := f.ctrl.List(ctx, f.user, "", 1)
	require.NoError(t, err)
	require.Len(t, page1, 5)
	require.Equal(t, names[0], page1[4].Name, "oldest last")

	// Beyond the data: empty, not an error
	page2, err := f.ctrl.List(ctx, f.user, "", 2)
	require.NoError(t, err)
	require.Empty(t, page2)

	// Negative pages clamp to the first page
	clamped, err := f.ctrl.List(ctx, f.user, "", -3)
	require.NoError(t, err)
	require.Equal(t, page0[0].ID, clamped[0].ID)
}

func TestList_ParentFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.upload(t, UploadInput{Name: "docs", Type: "folder"})
	f.upload(t, UploadInput{Name: "root.txt", Type: "file", Data: b64([]byte("x"))})
	nested := f.upload(t, UploadInput{
		Name: "nested.txt", Type: "file", ParentID: folder.ID.String(), Data: b64([]byte("y")),
	})

	list, err := f.ctrl.List(ctx, f.user, folder.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, nested.ID, list[0].ID)

	// An unparsable parent yields an empty list, not an error
	list, err = f.ctrl.List(ctx, f.user, "garbage", 0)
	require.NoError(t, err)
	require.Empty(t, list)

	// A parent that names nothing also yields an empty list
	list, err = f.ctrl.List(ctx, f.user, uuid.NewString(), 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSetPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := f.upload(t, UploadInput{Name: "mine.txt", Type: "file", Data: b64([]byte("x"))})

	published, err := f.ctrl.SetPublic(ctx, f.user, file.ID.String(), true)
	require.NoError(t, err)
	require.True(t, published.IsPublic)

	unpublished, err := f.ctrl.SetPublic(ctx, f.user, file.ID.String(), false)
	require.NoError(t, err)
	require.False(t, unpublished.IsPublic)

	// Foreign owners cannot flip the flag, and cannot learn the file exists
	_, err = f.ctrl.SetPublic(ctx, f.other, file.ID.String(), true)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestContent_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	private := f.upload(t, UploadInput{Name: "secret.txt", Type: "file", Data: b64([]byte("hidden"))})

	// The owner reads it
	result, err := f.ctrl.Content(ctx, f.user, private.ID.String(), "")
	require.NoError(t, err)
	require.Equal(t, []byte("hidden"), result.Data)

	// Anonymous and foreign callers see nothing
	_, err = f.ctrl.Content(ctx, nil, private.ID.String(), "")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = f.ctrl.Content(ctx, f.other, private.ID.String(), "")
	require.True(t, errors.Is(err, ErrNotFound))

	// Publishing opens it to everyone
	_, err = f.ctrl.SetPublic(ctx, f.user, private.ID.String(), true)
	require.NoError(t, err)

	result, err = f.ctrl.Content(ctx, nil, private.ID.String(), "")
	require.NoError(t, err)
	require.Equal(t, []byte("hidden"), result.Data)
}

func TestContent_ResponseShaping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	text := f.upload(t, UploadInput{Name: "notes.txt", Type: "file", Data: b64([]byte("abc"))})
	image := f.upload(t, UploadInput{Name: "photo.png", Type: "image", Data: b64(pngPayload)})
	unknown := f.upload(t, UploadInput{Name: "blob", Type: "file", Data: b64([]byte("abc"))})

	result, err := f.ctrl.Content(ctx, f.user, text.ID.String(), "")
	require.NoError(t, err)
	require.Contains(t, result.MIMEType, "text/plain")
	require.True(t, result.Attachment, "non-images download as attachments")
	require.Equal(t, "notes.txt", result.Name)

	result, err = f.ctrl.Content(ctx, f.user, image.ID.String(), "")
	require.NoError(t, err)
	require.Contains(t, result.MIMEType, "image/png")
	require.False(t, result.Attachment, "images render inline")

	result, err = f.ctrl.Content(ctx, f.user, unknown.ID.String(), "")
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", result.MIMEType)
}

func TestContent_Folder(t *testing.T) {
	f := newFixture(t)

	folder := f.upload(t, UploadInput{Name: "docs", Type: "folder"})

	_, err := f.ctrl.Content(context.Background(), f.user, folder.ID.String(), "")
	require.True(t, errors.Is(err, ErrFolderHasNoContent))
}

func TestContent_SizeVariants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	image := f.upload(t, UploadInput{Name: "photo.png", Type: "image", Data: b64(pngPayload)})
	text := f.upload(t, UploadInput{Name: "notes.txt", Type: "file", Data: b64([]byte("abc"))})

	// The size value is validated before the type check
	_, err := f.ctrl.Content(ctx, f.user, text.ID.String(), "300")
	require.True(t, errors.Is(err, ErrInvalidSize))

	_, err = f.ctrl.Content(ctx, f.user, image.ID.String(), "300")
	require.True(t, errors.Is(err, ErrInvalidSize))

	// A valid size on a non-image is its own failure
	_, err = f.ctrl.Content(ctx, f.user, text.ID.String(), "250")
	require.True(t, errors.Is(err, ErrSizeNotImage))

	// A valid size before the worker ran: not found
	_, err = f.ctrl.Content(ctx, f.user, image.ID.String(), "250")
	require.True(t, errors.Is(err, ErrNotFound))

	// Once the variant exists it is served
	variant := []byte("thumbnail bytes")
	require.NoError(t, f.contents.Write(ctx, image.Locator+"_250", variant))

	result, err := f.ctrl.Content(ctx, f.user, image.ID.String(), "250")
	require.NoError(t, err)
	require.Equal(t, variant, result.Data)
}
