package crisis

// ResponseFor maps a severity level to the supportive message sent back over
// the realtime channel when the pipeline short-circuits. Unknown severities
// get the neutral check-in so callers never see an empty reply.
func ResponseFor(severity Severity) string {
	switch severity {
	case SeverityHigh:
		return "I'm very concerned about your safety. It sounds like you're going through an extremely difficult time. Please know that you matter and there are people who want to help. Would you like me to connect you with crisis support resources right now?"
	case SeverityMedium:
		return "I'm concerned about what you're sharing. It sounds like you're in a lot of pain right now. You don't have to go through this alone. Would it help to talk about what's happening, or would you prefer information about support resources?"
	case SeverityLow:
		return "I hear that you're struggling right now. Those feelings can be really overwhelming. I'm here to listen and support you. Would you like to talk more about what you're experiencing?"
	default:
		return "I'm here to listen and support you. How are you feeling right now?"
	}
}
