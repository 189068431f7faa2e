package tui

import "github.com/safarshare/safar/internal/submit"

// submittedMsg carries the outcome of a submission attempt.
type submittedMsg struct {
	result *submit.Result
	err    error
}

// resetMsg arrives after the pipeline reset the submitted form.
type resetMsg struct{}

// tickMsg redraws the view so expired notices disappear.
type tickMsg struct{}
