package lsp

import (
	"goc/internal/errors"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertCompilerErrors transforms compiler errors into LSP diagnostics for IDE display.
// Errors without a source position are pinned to the start of the document.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))

	for _, err := range errs {
		line, col := err.Position.Line-1, err.Position.Column-1
		if err.Position.Line <= 0 {
			line, col = 0, 0
		}
		length := err.Length
		if length <= 0 {
			length = 1
		}

		message := err.Message
		for _, s := range err.Suggestions {
			message += "\nhelp: " + s.Message
		}
		for _, n := range err.Notes {
			message += "\nnote: " + n
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
				End:   protocol.Position{Line: uint32(line), Character: uint32(col + length)},
			},
			Severity: ptrSeverity(severity(err.Level)),
			Code:     &protocol.IntegerOrString{Value: err.Code},
			Source:   ptrString(source(err.Code)),
			Message:  message,
		})
	}

	return diagnostics
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func source(code string) string {
	switch errors.GetErrorCategory(code) {
	case "Parser":
		return "goc-parser"
	case "Internal":
		return "goc-ssa"
	default:
		return "goc-semantic"
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
