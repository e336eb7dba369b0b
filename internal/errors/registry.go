package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Control Errors (LS001-LS009)
	// ============================================

	"LS001": {
		Category: CategoryValidation,
		Message:  "Reserved option identifier",
	},
	"LS002": {
		Category: CategoryArgument,
		Message:  "setSelected requires a non-empty string",
	},
	"LS003": {
		Category: CategoryArgument,
		Message:  "setSelected requires an existing option",
	},

	// ============================================
	// Config Errors (LS010-LS019)
	// ============================================

	"LS010": {
		Category: CategoryConfig,
		Message:  "Config file could not be loaded",
	},
	"LS011": {
		Category: CategoryConfig,
		Message:  "Invalid config",
	},

	// ============================================
	// Protocol Errors (LS020-LS029)
	// ============================================

	"LS020": {
		Category: CategoryProtocol,
		Message:  "Malformed message",
	},
	"LS021": {
		Category: CategoryProtocol,
		Message:  "Unknown target",
	},

	// ============================================
	// CLI Errors (LS030-LS039)
	// ============================================

	"LS030": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
