package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests. The payment
	// service keeps some requests (e.g. charge creation) open for a long time,
	// so this is deliberately generous.
	DefaultHTTPTimeout = 80 * time.Second

	// ShortHTTPTimeout is used for quick operations such as connectivity checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Display values.
const (
	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// HTTP status bounds.
const (
	// StatusSuccessMin is the lowest status code treated as success.
	StatusSuccessMin = 200

	// StatusSuccessMax is the highest status code treated as success.
	StatusSuccessMax = 299
)
