package errors

// Error codes for the goc compiler.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: Parser errors
// E0800-E0899: Warning codes
// E0900-E0999: Internal compiler errors

const (
	// E0001: Variable resolution errors
	ErrorUndefinedVariable = "E0001"

	// E0017: Use of a variable that is not assigned on every path
	ErrorUninitializedVariable = "E0017"

	// E0100: Syntax errors reported by the parser
	ErrorSyntax = "E0100"

	// E0900: SSA construction or verification failed
	ErrorInternal = "E0900"

	// W0001: Variable is assigned but never read
	WarningUnusedVariable = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but never assigned"
	case ErrorUninitializedVariable:
		return "Variable may be used before it is assigned"
	case ErrorSyntax:
		return "Source does not match the grammar"
	case ErrorInternal:
		return "Internal compiler error while building SSA form"
	case WarningUnusedVariable:
		return "Variable is assigned but never used"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	case code != "" && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
