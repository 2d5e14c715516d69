package synth

// ErrorKind classifies a GenerationError for the caller: validation errors
// are fixable by changing the input, configuration errors are not.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConfig
	KindInternal
)

// GenerationError is the structured error crossing the synthesis boundary:
// a short message plus a details mapping (e.g. missing layout -> available
// names, validation failure -> per-field reasons).
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

func validationError(err error, details map[string]interface{}) *GenerationError {
	return &GenerationError{Kind: KindValidation, Message: "validation error", Details: details, Err: err}
}

func configError(message string, err error, details map[string]interface{}) *GenerationError {
	return &GenerationError{Kind: KindConfig, Message: message, Details: details, Err: err}
}

func internalError(message string, err error) *GenerationError {
	return &GenerationError{Kind: KindInternal, Message: message, Err: err}
}
