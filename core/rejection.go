package core

// RejectReason classifies why a candidate record was removed from the pipeline.
// No reason is fatal: every rejection removes exactly one candidate and
// processing continues.
type RejectReason string

const (
	// RejectMalformedURL indicates the record URL could not be resolved to an absolute URL.
	RejectMalformedURL RejectReason = "malformed_url"

	// RejectTitleTooShort indicates the trimmed title was below the minimum length.
	RejectTitleTooShort RejectReason = "title_too_short"

	// RejectPrivacyViolation indicates the record exposed a contact channel or
	// email-shaped text.
	RejectPrivacyViolation RejectReason = "privacy_violation"

	// RejectNoiseMatch indicates the title matched the noise lexicon
	// (administrative boilerplate, not a listing).
	RejectNoiseMatch RejectReason = "noise_match"

	// RejectSourceUnavailable indicates a source adapter failed and contributed
	// zero records to the run.
	RejectSourceUnavailable RejectReason = "source_unavailable"
)

// Rejection records one discarded candidate with enough context to audit the run.
type Rejection struct {
	Source string
	Title  string
	URL    string
	Reason RejectReason
}
