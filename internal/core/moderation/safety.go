package moderation

import (
	"encoding/json"
	"sort"
	"strings"
)

// SafetyFromCategories maps a provider category taxonomy onto the three safety flags
// a flag is set when any of its categories is flagged
func SafetyFromCategories(provider string, flags map[string]bool, payload json.RawMessage) SafetySignal {
	return SafetySignal{
		NudityDetected:          anyFlagged(flags, nudityCategories),
		ViolenceDetected:        anyFlagged(flags, violenceCategories),
		ExplicitContentDetected: anyFlagged(flags, explicitCategories),
		Summary:                 summarize(flags),
		Raw:                     Raw{Provider: provider, Payload: payload},
	}
}

func anyFlagged(flags map[string]bool, names []string) bool {
	for _, n := range names {
		if flags[n] {
			return true
		}
	}
	return false
}

// summarize lists flagged categories in sorted order so the text is stable
func summarize(flags map[string]bool) string {
	var hit []string
	for k, v := range flags {
		if v {
			hit = append(hit, k)
		}
	}
	if len(hit) == 0 {
		return summaryClean
	}
	sort.Strings(hit)
	return summaryFlagged + strings.Join(hit, ", ")
}
