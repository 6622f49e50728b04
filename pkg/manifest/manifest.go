package manifest

// BatchManifest is the on-disk overview of one batch run: totals, the
// error-kind distribution, and one entry per title. It lives next to
// the output files so a run can be audited without the history
// database.
type BatchManifest struct {
	GeneratedAt string         `json:"generated_at"`
	InputDir    string         `json:"input_dir"`
	TotalTitles int            `json:"total_titles"`
	Done        int            `json:"done"`
	Quarantined int            `json:"quarantined"`
	Failed      int            `json:"failed"`
	ErrorKinds  []string       `json:"error_kinds,omitempty"`
	Results     []TitleSummary `json:"results"`
}

// TitleSummary is the manifest entry for a single title.
type TitleSummary struct {
	Source       string `json:"source"`
	Name         string `json:"name"`
	Outcome      string `json:"outcome"`
	OutputPath   string `json:"output_path,omitempty"`
	Pages        int    `json:"pages,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
