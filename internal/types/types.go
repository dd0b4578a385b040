package types

// Step is one recorded version of a derivation.
type Step struct {
	Expression string `json:"expression"`
	// Rendered is Expression formatted with the engine's render settings.
	// It is empty when it would equal Expression.
	Rendered string `json:"rendered,omitempty"`
	Law      string `json:"law,omitempty"`
}

// Report is the outcome of normalizing one expression.
type Report struct {
	Input     string   `json:"input"`
	Form      string   `json:"form"`
	Variables []string `json:"variables,omitempty"`
	Result    string   `json:"result"`
	Canonical string   `json:"canonical"`
	Steps     []Step   `json:"steps"`
	// Verified is the solver's verdict on Input and Result, when requested.
	Verified string `json:"verified,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Laws returns the distinct laws used by the derivation in order of first use.
func (r *Report) Laws() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.Steps {
		if s.Law == "" || seen[s.Law] {
			continue
		}
		seen[s.Law] = true
		out = append(out, s.Law)
	}
	return out
}
