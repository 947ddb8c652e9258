package errors

import (
	"net/http"
	"sort"
)

// Registered error codes.
const (
	CodeRouteNotFound   = "E100"
	CodeResolution      = "E101"
	CodeNotImplemented  = "E102"
	CodeComponentFailed = "E103"
	CodeTransport       = "E110"
	CodeWireDecode      = "E120"
	CodeInvalidPayload  = "E121"
	CodeConfig          = "E130"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Status   int
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (E100-E109)
	// ============================================

	CodeRouteNotFound: {
		Category: CategoryRouting,
		Message:  "Route not found",
		Detail:   "No page matches the requested path. Paths containing a '.' are never treated as routes.",
		Status:   http.StatusNotFound,
	},
	CodeResolution: {
		Category: CategoryRuntime,
		Message:  "Tree resolution failed",
		Detail:   "The node tree for the route could not be reduced to a client tree. No partial output is sent.",
		Status:   http.StatusInternalServerError,
	},
	CodeNotImplemented: {
		Category: CategoryRuntime,
		Message:  "Unsupported node shape",
		Detail:   "The resolver reached a node it cannot evaluate. This is a programming error in the tree producer.",
		Status:   http.StatusInternalServerError,
	},
	CodeComponentFailed: {
		Category: CategoryRuntime,
		Message:  "Component failed",
		Detail:   "A component returned an error while rendering.",
		Status:   http.StatusInternalServerError,
	},

	// ============================================
	// Transport Errors (E110-E119)
	// ============================================

	CodeTransport: {
		Category: CategoryTransport,
		Message:  "Transport failed",
		Detail:   "Fetching the tree or submitting data failed. The previously rendered tree stays displayed.",
	},

	// ============================================
	// Protocol Errors (E120-E129)
	// ============================================

	CodeWireDecode: {
		Category: CategoryProtocol,
		Message:  "Invalid wire data",
		Detail:   "The payload is not a valid encoded client tree.",
	},
	CodeInvalidPayload: {
		Category: CategoryProtocol,
		Message:  "Invalid submission",
		Detail:   "The submitted body must be a JSON string or an object with a non-empty comment.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Configuration Errors (E130-E139)
	// ============================================

	CodeConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "rsc.yaml could not be read or holds an invalid value.",
	},
}

// Register adds a custom error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
