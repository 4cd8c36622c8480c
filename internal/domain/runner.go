package domain

// RunMode selects whether a batch pass writes or only reports.
type RunMode string

const (
	// RunModeApply performs finalization writes.
	RunModeApply RunMode = "apply"
	// RunModePreview evaluates everything but performs zero writes.
	RunModePreview RunMode = "preview"
)

// RunSummary is the result of one batch pass. Failures of individual groups
// are counted here, never surfaced as a pass-level error.
type RunSummary struct {
	GroupsEvaluated    int
	GroupsFinalized    int
	CampaignsFinalized int
	PartialFailures    int
	GroupErrors        int
}
