package output

// SolutionOutput is the JSON shape of a solve result.
type SolutionOutput struct {
	Status        string             `json:"status"`
	Objective     *QuantityInfo      `json:"objective,omitempty"`
	RunID         string             `json:"run_id,omitempty"`
	Variables     []VariableInfo     `json:"variables"`
	Constants     []VariableInfo     `json:"constants"`
	Sensitivities map[string]float64 `json:"sensitivities,omitempty"`
}

// QuantityInfo is a value with its display unit.
type QuantityInfo struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// VariableInfo is one solved or pinned quantity.
type VariableInfo struct {
	Key         string  `json:"key"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description,omitempty"`
	Pinned      bool    `json:"pinned,omitempty"`
}

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	Variables   []VariableInfo `json:"variables"`
	Constraints []string       `json:"constraints"`
	Summary     ListSummary    `json:"summary"`
}

// ListSummary aggregates the flattened system.
type ListSummary struct {
	TotalVariables   int `json:"total_variables"`
	FreeVariables    int `json:"free_variables"`
	PinnedVariables  int `json:"pinned_variables"`
	TotalConstraints int `json:"total_constraints"`
}

// RunInfo is one recorded solve in the runs listing.
type RunInfo struct {
	ID          string   `json:"id"`
	StudyFile   string   `json:"study_file"`
	Status      string   `json:"status"`
	Objective   *float64 `json:"objective,omitempty"`
	Error       string   `json:"error,omitempty"`
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at,omitempty"`
}
