// Package session carries the optional working-session context that
// accompanies an analysis: which project the user is in, what stack it
// uses, which files were recently touched.
package session

// Hints is caller-supplied session context. All fields are optional.
type Hints struct {
	SessionID   string   `json:"session_id,omitempty"`
	ProjectPath string   `json:"project_path,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
	RecentFiles []string `json:"recent_files,omitempty"`
	Language    string   `json:"language,omitempty"`
}

// Richness measures how much usable context the hints carry, in [0,1].
// Known tech stack entries weigh more than recent files.
func (h *Hints) Richness() float64 {
	if h == nil {
		return 0
	}

	var r float64
	if h.ProjectPath != "" {
		r += 0.15
	}

	stack := len(h.TechStack)
	if stack > 3 {
		stack = 3
	}
	files := len(h.RecentFiles)
	if files > 3 {
		files = 3
	}
	r += 0.2*float64(stack) + 0.08*float64(files)

	if r > 1 {
		r = 1
	}
	return r
}
