package extl

import "errors"

const (
	DEF_COMPONENT_ENTRY = "main.js"
	MANIFEST_FILE       = "manifest.json"

	// MOUNT_CALLBACK is the function a component script must export.
	MOUNT_CALLBACK = "onMount"

	// SET_TIMEOUT_KEYED is the global through which scripts reach the
	// keyed scheduler of their page.
	SET_TIMEOUT_KEYED = "setTimeout$"
)

var (
	ErrInvalidComponent   = errors.New("invalid component")
	ErrEntrypointNotFound = errors.New("entrypoint not found")
	ErrMountNotDefined    = errors.New("onMount function not defined")

	ErrComponentNotFound = errors.New("component not found")
	ErrDuplicateName     = errors.New("duplicate component name")

	ErrRuntimeClosed = errors.New("script runtime closed")
)
