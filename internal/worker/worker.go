// Package worker runs the background job consumer: thumbnail generation for
// uploaded images and welcome greetings for new users.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/pkg/queue"
	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// thumbnailWidths are the variant widths generated for every image, matching
// the sizes the content retrieval endpoint accepts.
var thumbnailWidths = []int{500, 250, 100}

// Worker consumes jobs from the in-process queue.
//
// Job failures are terminal: a job that cannot be processed (file vanished,
// content unreadable, bytes not decodable) is logged and dropped, never
// retried. The upload path does not wait on any of this - a thumbnail
// requested before its job ran is simply not found.
type Worker struct {
	jobs     *queue.MemoryQueue
	meta     metadata.MetadataStore
	contents content.ContentStore
}

// New creates a worker over the given queue and stores.
func New(jobs *queue.MemoryQueue, meta metadata.MetadataStore, contents content.ContentStore) *Worker {
	return &Worker{jobs: jobs, meta: meta, contents: contents}
}

// Run consumes jobs until ctx is cancelled or the queue is closed and
// drained. It is meant to be started in its own goroutine by the process
// bootstrap.
func (w *Worker) Run(ctx context.Context) {
	logger.Info("Background worker started")
	files := w.jobs.Files()
	users := w.jobs.Users()

	for files != nil || users != nil {
		select {
		case <-ctx.Done():
			logger.Info("Background worker stopping: %v", ctx.Err())
			return

		case job, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			if err := w.processFile(ctx, job); err != nil {
				logger.Error("Thumbnail job for file %s failed: %v", job.FileID, err)
			}

		case job, ok := <-users:
			if !ok {
				users = nil
				continue
			}
			if err := w.processUser(ctx, job); err != nil {
				logger.Error("Welcome job for user %s failed: %v", job.UserID, err)
			}
		}
	}
	logger.Info("Background worker stopped: queue closed")
}

// processFile generates the thumbnail variants for an uploaded image and
// stores each at the derived variant locator.
func (w *Worker) processFile(ctx context.Context, job queue.FileJob) error {
	file, err := w.meta.GetFile(ctx, job.FileID)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}
	if file.UserID != job.UserID {
		return fmt.Errorf("file %s is not owned by user %s", job.FileID, job.UserID)
	}
	if file.Type != metadata.FileTypeImage {
		return fmt.Errorf("file %s is not an image", job.FileID)
	}

	data, err := w.contents.Read(ctx, file.Locator)
	if err != nil {
		return fmt.Errorf("failed to read image content: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	encodeFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}

	for _, width := range thumbnailWidths {
		// Height 0 preserves the aspect ratio.
		thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, thumb, encodeFormat); err != nil {
			return fmt.Errorf("failed to encode %dpx thumbnail: %w", width, err)
		}

		variant := fmt.Sprintf("%s_%d", file.Locator, width)
		if err := w.contents.Write(ctx, variant, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to store %dpx thumbnail: %w", width, err)
		}
	}

	logger.Debug("Generated %d thumbnails for file %s", len(thumbnailWidths), file.ID)
	return nil
}

// processUser greets a freshly registered user.
func (w *Worker) processUser(ctx context.Context, job queue.UserJob) error {
	user, err := w.meta.GetUser(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	logger.Info("Welcome %s!", user.Email)
	return nil
}
