// Package common provides the configuration keys shared by the pagekit
// commands.
package common

// Environment variable names for configuration. Flags take precedence.
const (
	// DebugEnv enables debug logging when set to a true value.
	DebugEnv = "PAGEKIT_DEBUG"

	// ComponentsEnv is the directory client components are loaded from.
	ComponentsEnv = "PAGEKIT_COMPONENTS"

	// LocationEnv is the URL of the page being mounted.
	LocationEnv = "PAGEKIT_LOCATION"

	// ContextEnv selects the context components are mounted in.
	ContextEnv = "PAGEKIT_CONTEXT"

	// LogFileEnv is a file that receives a copy of the log.
	LogFileEnv = "PAGEKIT_LOG_FILE"
)
