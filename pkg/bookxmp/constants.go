package bookxmp

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Command completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitEncryptedMetadata = 11 // Metadata are encrypted
	ExitDocumentError     = 12 // Document could not be loaded, saved or was closed
	ExitMetadataInvalid   = 13 // Metadata packet or stored value is malformed
	ExitCatalogError      = 14 // Catalog database unreachable
)

const (
	// SidecarFormat is the format marker written to reference host documents.
	SidecarFormat = "bookxmp/v1"

	// DateLayout is the layout used for book and work creation dates.
	DateLayout = "2006-01-02"

	// DefaultCatalogConnectTimeout bounds a single catalog connection attempt.
	DefaultCatalogConnectTimeout = 10 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
