package tutor

import "strings"

const (
	// correctMarker in a correction response means no error was found.
	correctMarker = "Correct!"

	// correctionMarker introduces the corrected form in a correction response.
	correctionMarker = "Corrected to:"

	// ParseErrorSentinel is logged when the corrected form cannot be
	// extracted from the response.
	ParseErrorSentinel = "Parsing error - check LLM output."
)

// isCorrect reports whether a correction response declares the input
// error-free. Substring match: surrounding prose does not matter.
func isCorrect(response string) bool {
	return strings.Contains(response, correctMarker)
}

// extractCorrection pulls the corrected form out of a correction response:
// the text after "Corrected to:" up to the first period, trimmed. Extraction
// is best-effort; when the marker is missing the sentinel is returned and
// the turn carries on.
func extractCorrection(response string) string {
	_, after, found := strings.Cut(response, correctionMarker)
	if !found {
		return ParseErrorSentinel
	}
	if dot := strings.Index(after, "."); dot >= 0 {
		after = after[:dot]
	}
	return strings.TrimSpace(after)
}
