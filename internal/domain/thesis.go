package domain

// ThesisDocument is the six-field solution paper synthesized from the
// conversation and the decision log. Every field is independently editable.
type ThesisDocument struct {
	Title            string `json:"title"`
	Abstract         string `json:"abstract"`
	ProblemAnalysis  string `json:"problemAnalysis"`
	Alternatives     string `json:"alternatives"`
	ProposedSolution string `json:"proposedSolution"`
	Conclusion       string `json:"conclusion"`
}

// Merge overlays the non-empty fields of partial onto d, preserving any
// field the partial draft omits.
func (d *ThesisDocument) Merge(partial ThesisDocument) {
	if partial.Title != "" {
		d.Title = partial.Title
	}
	if partial.Abstract != "" {
		d.Abstract = partial.Abstract
	}
	if partial.ProblemAnalysis != "" {
		d.ProblemAnalysis = partial.ProblemAnalysis
	}
	if partial.Alternatives != "" {
		d.Alternatives = partial.Alternatives
	}
	if partial.ProposedSolution != "" {
		d.ProposedSolution = partial.ProposedSolution
	}
	if partial.Conclusion != "" {
		d.Conclusion = partial.Conclusion
	}
}

// IsEmpty reports whether no field has been filled in yet.
func (d ThesisDocument) IsEmpty() bool {
	return d.Title == "" && d.Abstract == "" && d.ProblemAnalysis == "" &&
		d.Alternatives == "" && d.ProposedSolution == "" && d.Conclusion == ""
}
