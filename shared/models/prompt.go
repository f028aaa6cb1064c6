package models

// PromptDocument is the assembled instruction document for one generation
// attempt. It is owned by the in-flight request and never shared.
type PromptDocument struct {
	Text            string
	TargetWordCount int
	ToneTemplateID  string
	StyleTemplateID string
}

// WithNegativeConstraint returns a copy of the document with one appended
// sentence forbidding a specific phrase. Used for the single post-check
// retry; nothing else in the prompt may change between attempts.
func (d PromptDocument) WithNegativeConstraint(phrase string) PromptDocument {
	out := d
	out.Text = d.Text + "\n\nCRITICAL: Do NOT include \"" + phrase + "\". Create 100% original content."
	return out
}
