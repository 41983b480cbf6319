package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldBackend     = "backend"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldName        = "name"
	FieldTaskType    = "task_type"
	FieldHours       = "hours"
	FieldDate        = "date"
	FieldRecords     = "records"
	FieldSheetsRef   = "sheets_ref"
	FieldTaskID      = "task_id"
	FieldDurationMs  = "duration_ms"
	FieldHeaderState = "header_status"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStats   = "stats"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpReadAll   = "read_all"
	OpHeaders   = "ensure_headers"
	OpFilter    = "filter"
	OpAggregate = "aggregate"
	OpSync      = "sync"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTask adds the identifying fields of a logged task
func (f LogFields) WithTask(name, taskType, date string, hours float64) LogFields {
	f[FieldName] = name
	f[FieldTaskType] = taskType
	f[FieldDate] = date
	f[FieldHours] = hours
	return f
}

// WithPeriod adds month and year fields
func (f LogFields) WithPeriod(month, year int) LogFields {
	f[FieldMonth] = month
	f[FieldYear] = year
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
