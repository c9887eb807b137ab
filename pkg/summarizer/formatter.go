package summarizer

// Formatter renders a batch Summary as a report document.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a plain function to Formatter.
type FormatFunc func(summary *Summary) string

func (f FormatFunc) Format(summary *Summary) string { return f(summary) }
