package errors

// Error codes for the mono toolchain. They appear in rendered diagnostics
// and in LSP diagnostic codes.
//
// Error code ranges:
// E0100-E0199: Lexical errors
// E0200-E0299: Parser errors
// E0300-E0399: Runtime errors

const (
	// E0101: Character that starts no token
	ErrorUnexpectedCharacter = "E0101"

	// E0102: String literal missing its closing quote
	ErrorUnterminatedString = "E0102"

	// E0103: Character literal that is empty or holds more than one character
	ErrorInvalidCharLiteral = "E0103"

	// E0104: Malformed or out of range number
	ErrorInvalidNumber = "E0104"

	// E0105: Unknown backslash escape
	ErrorInvalidEscape = "E0105"

	// E0201: Token that cannot appear here
	ErrorUnexpectedToken = "E0201"

	// E0202: Parenthesis without its partner
	ErrorUnmatchedBracket = "E0202"

	// E0203: Left side of '=' is not a variable
	ErrorInvalidAssignmentTarget = "E0203"

	// E0204: Expression nested beyond the parser limit
	ErrorTooDeep = "E0204"

	// E0301: Variable read before assignment
	ErrorUndefinedVariable = "E0301"

	// E0302: Operator applied to unsupported operand types
	ErrorTypeMismatch = "E0302"

	// E0303: Division, modulo or negative power of zero
	ErrorDivisionByZero = "E0303"

	// E0304: Evaluation nested beyond the evaluator limit
	ErrorStackOverflow = "E0304"

	// E0305: Integer result outside the 64-bit range
	ErrorIntegerOverflow = "E0305"

	// E0900: Anything that is not a lexical, parse or runtime error
	ErrorInternal = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "Character is not part of any token"
	case ErrorUnterminatedString:
		return "String literal is missing its closing quote"
	case ErrorInvalidCharLiteral:
		return "Character literal must contain exactly one character"
	case ErrorInvalidNumber:
		return "Number literal is malformed or out of range"
	case ErrorInvalidEscape:
		return "Unknown escape sequence in literal"
	case ErrorUnexpectedToken:
		return "Token is not valid at this point"
	case ErrorUnmatchedBracket:
		return "Bracket has no matching partner"
	case ErrorInvalidAssignmentTarget:
		return "Only variables can be assigned to"
	case ErrorTooDeep:
		return "Expression is nested too deeply"
	case ErrorUndefinedVariable:
		return "Variable is used before it is assigned"
	case ErrorTypeMismatch:
		return "Operator does not support these operand types"
	case ErrorDivisionByZero:
		return "Division by zero"
	case ErrorStackOverflow:
		return "Evaluation is nested too deeply"
	case ErrorIntegerOverflow:
		return "Integer result does not fit in 64 bits"
	case ErrorInternal:
		return "Internal error"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Lexer"
	case code >= "E0200" && code < "E0300":
		return "Parser"
	case code >= "E0300" && code < "E0400":
		return "Runtime"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	default:
		return "Unknown"
	}
}
