package main

// Exit codes shared by all refcheck commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file or flag values)
	ExitDataError   = 3 // Data error (malformed TEI/JSON input, unreadable PDF)
	ExitLookupError = 4 // Lookup service error (cache unavailable)
)
