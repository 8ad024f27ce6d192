package files

import "errors"

// Validation and access errors for file operations. Each distinct user-facing
// failure gets its own sentinel so the HTTP layer can report a specific,
// stable reason string per case.
var (
	// ErrMissingName indicates an upload without a name.
	ErrMissingName = errors.New("missing name")

	// ErrInvalidType indicates an upload with a missing or unknown type.
	ErrInvalidType = errors.New("missing or invalid type")

	// ErrMissingData indicates a non-folder upload without content.
	ErrMissingData = errors.New("missing data")

	// ErrInvalidData indicates upload content that is not valid base64.
	ErrInvalidData = errors.New("invalid base64 data")

	// ErrInvalidImageData indicates an image upload whose bytes carry no
	// recognized image signature.
	ErrInvalidImageData = errors.New("content is not a recognized image type")

	// ErrParentNotFound indicates the referenced parent does not exist or
	// is not owned by the caller.
	ErrParentNotFound = errors.New("parent not found")

	// ErrParentNotFolder indicates the referenced parent exists but is not
	// a folder.
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrNotFound indicates the file does not exist - or exists but the
	// caller may not see it. The two are indistinguishable by design: an
	// ownership or visibility failure must not confirm that the file
	// exists.
	ErrNotFound = errors.New("file not found")

	// ErrFolderHasNoContent indicates a content request against a folder.
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")

	// ErrInvalidSize indicates a size parameter outside the supported set.
	ErrInvalidSize = errors.New("invalid size parameter")

	// ErrSizeNotImage indicates a size parameter on a non-image file.
	ErrSizeNotImage = errors.New("size parameter only applicable to images")
)
