package models

// ViolationKind discriminates why content was blocked.
type ViolationKind string

const (
	ViolationNone    ViolationKind = "none"
	ViolationIP      ViolationKind = "ip"
	ViolationHarmful ViolationKind = "harmful"
)

// SafetyVerdict is the result of running text through the phrase detectors.
// MatchedPhrases preserves dataset order; the first entry is the primary
// violation used for user-facing messaging, the rest are kept for auditing.
type SafetyVerdict struct {
	Violated       bool
	Kind           ViolationKind
	MatchedPhrases []string
}

// PrimaryPhrase returns the first matched phrase, or "" for a clean verdict.
func (v SafetyVerdict) PrimaryPhrase() string {
	if len(v.MatchedPhrases) == 0 {
		return ""
	}
	return v.MatchedPhrases[0]
}

// CleanVerdict is the verdict for text that triggered no detector.
func CleanVerdict() SafetyVerdict {
	return SafetyVerdict{Kind: ViolationNone}
}
