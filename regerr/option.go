package regerr

// Option is an Error option function
type Option func(*Error)

// WithMessage sets the free-form detail appended to the error text.
func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }

// WithSection sets the top-level registry section.
func WithSection(section string) Option { return func(e *Error) { e.Section = section } }

// WithPath sets the open tag path.
func WithPath(path string) Option { return func(e *Error) { e.Path = path } }

// WithRaw sets the raw attribute text of the offending tag.
func WithRaw(raw string) Option { return func(e *Error) { e.Raw = raw } }

// WithRecordKind sets the name of the record being built.
func WithRecordKind(kind string) Option { return func(e *Error) { e.RecordKind = kind } }
