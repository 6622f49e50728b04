package batch

// Job identifies one discovered title document for a worker to process.
type Job struct {
	SourcePath string
}

// Outcome is the terminal verdict of one title job.
type Outcome string

const (
	OutcomeDone        Outcome = "done"
	OutcomeQuarantined Outcome = "quarantined"
	OutcomeFailed      Outcome = "failed"
)

// Result holds the outcome of one processed title. Errors are carried as
// values; a failing title never unwinds past its own job.
type Result struct {
	SourcePath string
	Name       string
	Outcome    Outcome
	OutputPath string
	PageCount  int
	Error      error
	ErrorKind  string
	// CleanupWarning reports a best-effort cleanup failure. It never
	// changes the outcome.
	CleanupWarning string
}

// BatchResult aggregates per-title outcomes for one run.
type BatchResult struct {
	Done        int
	Quarantined int
	Failed      int
	Titles      []Result
}

// TitleOutput is the per-title entry in the printed run summary.
type TitleOutput struct {
	Source         string `json:"source" yaml:"source"`
	Name           string `json:"name" yaml:"name"`
	Outcome        string `json:"outcome" yaml:"outcome"`
	OutputPath     string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Pages          int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind      string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	CleanupWarning string `json:"cleanup_warning,omitempty" yaml:"cleanup_warning,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	Titles           int     `json:"titles" yaml:"titles"`
	Done             int     `json:"done" yaml:"done"`
	Quarantined      int     `json:"quarantined" yaml:"quarantined"`
	Failed           int     `json:"failed" yaml:"failed"`
	TotalTimeSeconds float64 `json:"total_time_seconds" yaml:"total_time_seconds"`
}

// FinalOutput is the structured summary for the entire run.
type FinalOutput struct {
	Status  string        `json:"status" yaml:"status"`
	Results []TitleOutput `json:"results" yaml:"results"`
	Stats   Stats         `json:"stats" yaml:"stats"`
}
