package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Stable error codes used throughout the builder.
const (
	CodeInvalidConfig     = "E101"
	CodeMissingConfig     = "E102"
	CodeUnknownKind       = "E201"
	CodeInstanceNotFound  = "E202"
	CodeInvalidKind       = "E203"
	CodePersistenceFailed = "E301"
	CodePageNotFound      = "E302"
	CodeCatalogFailed     = "E401"
	CodeGenerationAborted = "E501"
	CodeMissingSkeleton   = "E502"
	CodeBadFragment       = "E503"
	CodeUploadFailed      = "E504"
	CodeBadRequest        = "E601"
	CodeAppNotFound       = "E701"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid appcanvas.json",
		Detail:   "The appcanvas.json configuration file is malformed.",
	},
	CodeMissingConfig: {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
	},

	// ============================================
	// Page Model Errors (E200-E299)
	// ============================================

	CodeUnknownKind: {
		Category: CategoryModel,
		Message:  "Unknown component kind",
		Detail:   "The referenced kind id is not present in the component registry.",
	},
	CodeInstanceNotFound: {
		Category: CategoryModel,
		Message:  "Component instance not found",
		Detail:   "No instance with the given id exists on this page.",
	},
	CodeInvalidKind: {
		Category: CategoryModel,
		Message:  "Invalid kind definition",
		Detail:   "A kind's default parameters and property schema must declare exactly the same keys.",
	},

	// ============================================
	// Storage Errors (E300-E399)
	// ============================================

	CodePersistenceFailed: {
		Category: CategoryStorage,
		Message:  "Persistence operation failed",
		Detail:   "The page store reported an error. The save was not applied; retry explicitly.",
	},
	CodePageNotFound: {
		Category: CategoryStorage,
		Message:  "Page not found",
		Detail:   "No page matches the requested app key and slug.",
	},

	// ============================================
	// Catalog Errors (E400-E499)
	// ============================================

	CodeCatalogFailed: {
		Category: CategoryCatalog,
		Message:  "Storefront catalog unavailable",
		Detail:   "The storefront data source failed or returned no items. A fallback catalog is served instead.",
	},

	// ============================================
	// Generation Errors (E500-E599)
	// ============================================

	CodeGenerationAborted: {
		Category: CategoryGenerate,
		Message:  "Generation aborted",
		Detail:   "The generator could not produce a project tree. Any partial output should be discarded.",
	},
	CodeMissingSkeleton: {
		Category: CategoryGenerate,
		Message:  "Base skeleton missing",
		Detail:   "A scaffold file required by every generated project could not be expanded.",
	},
	CodeBadFragment: {
		Category: CategoryGenerate,
		Message:  "Invalid component fragment template",
		Detail:   "A per-kind source template failed to parse or execute.",
	},
	CodeUploadFailed: {
		Category: CategoryGenerate,
		Message:  "Bundle upload failed",
		Detail:   "The generated project tree could not be uploaded to object storage.",
	},

	// ============================================
	// Server Errors (E600-E699)
	// ============================================

	CodeBadRequest: {
		Category: CategoryServer,
		Message:  "Invalid builder request",
		Detail:   "The request is missing a required field or carries a malformed instance list.",
	},

	// ============================================
	// CLI Errors (E700-E799)
	// ============================================

	CodeAppNotFound: {
		Category: CategoryCLI,
		Message:  "App not found",
		Detail:   "No saved pages exist for the given app key.",
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
