package triage

import "strings"

// Intent is what a follow-up message asks for
type Intent int

// Follow-up intents. IntentClarify is the fallback when nothing matches.
const (
	IntentClarify Intent = iota
	IntentConfirm
	IntentDecline
	IntentEvidence
	IntentCost
)

func (i Intent) String() string {
	switch i {
	case IntentConfirm:
		return "confirm"
	case IntentDecline:
		return "decline"
	case IntentEvidence:
		return "evidence"
	case IntentCost:
		return "cost"
	default:
		return "clarify"
	}
}

type intentTrigger struct {
	intent  Intent
	phrases []string
}

// intentTriggers is checked in order; the first intent with a matching phrase wins.
var intentTriggers = []intentTrigger{
	{IntentConfirm, []string{"yes", "lawyer", "consultation", "schedule"}},
	{IntentDecline, []string{"no", "not now", "maybe later"}},
	{IntentEvidence, []string{"evidence", "document", "proof"}},
	{IntentCost, []string{"cost", "fee", "afford", "money"}},
}

// DetectIntent classifies a follow-up message
func DetectIntent(message string) Intent {
	text := strings.ToLower(message)
	for _, t := range intentTriggers {
		if countMatches(text, t.phrases) > 0 {
			return t.intent
		}
	}
	return IntentClarify
}
