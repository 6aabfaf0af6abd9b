package vm

// Exception class names surfaced by the interpreter.
const (
	ClassArithmeticException  = "java.lang.ArithmeticException"
	ClassNullPointerException = "java.lang.NullPointerException"
	ClassStackOverflowError   = "java.lang.StackOverflowError"
)

// JavaException is a runtime condition the interpreted program caused,
// named after the exception class the same program would throw on a real
// JVM. Plain errors, by contrast, signal malformed code or interpreter
// bugs.
type JavaException struct {
	Class   string
	Message string
}

func (e *JavaException) Error() string {
	if e.Message == "" {
		return e.Class
	}
	return e.Class + ": " + e.Message
}

func NewArithmeticException(message string) *JavaException {
	return &JavaException{Class: ClassArithmeticException, Message: message}
}

func NewNullPointerException(message string) *JavaException {
	return &JavaException{Class: ClassNullPointerException, Message: message}
}

func NewStackOverflowError() *JavaException {
	return &JavaException{Class: ClassStackOverflowError}
}
