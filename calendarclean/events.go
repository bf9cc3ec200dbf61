package calendarclean

import (
	"strings"
	"unicode"
)

const mixedEventMarker = "四技甄選入學實作面試"

var stopContains = []string{"週別", "日期及行事計畫", "民國", "致理科技大學", "※註"}

// cleanEvent implements spec.md §4.6's event-cleaning pass, applied to an
// accumulated event string right before it is pushed as a row.
func cleanEvent(raw string) string {
	tokens := strings.Fields(raw)

	if stop := firstStopToken(tokens); stop >= 0 {
		tokens = tokens[:stop]
	}

	if len(tokens) > 1 && allTrailingNoise(tokens[1:]) {
		tokens = tokens[:1]
	}

	for len(tokens) > 0 && isTrailingNoiseToken(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	result := strings.TrimSpace(strings.Join(tokens, " "))
	result = strings.TrimSuffix(result, "，")

	if strings.HasPrefix(result, "上課後") && strings.Contains(result, ")") && !strings.Contains(result, "(") {
		result = "(" + result
	}

	return result
}

func firstStopToken(tokens []string) int {
	for i, tok := range tokens {
		if containsAny(tok, stopContains...) {
			return i
		}
		switch tok {
		case "月", "曆", "1.", "2.", "3.":
			return i
		}
		if strings.HasSuffix(tok, "月") {
			return i
		}
	}
	return -1
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func allTrailingNoise(tokens []string) bool {
	for _, tok := range tokens {
		if !isTrailingNoiseToken(tok) {
			return false
		}
	}
	return true
}

func isTrailingNoiseToken(tok string) bool {
	if tok == "" {
		return true
	}
	if allRunesIn(tok, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.' || r == ',' || r == ':' || r == '：'
	}) {
		return true
	}
	return allRunesIn(tok, func(r rune) bool {
		return strings.ContainsRune("日一二三四五六", r)
	})
}

// splitMixedEvent implements spec.md §4.6's mixed-event split: an event
// that smuggles in the 四技甄選入學實作面試 boilerplate marker becomes two
// events, the first ending before the marker and the second starting at it.
func splitMixedEvent(event string) []string {
	const marker = " " + mixedEventMarker
	idx := strings.Index(event, marker)
	if idx < 0 {
		return []string{event}
	}
	first := strings.TrimSpace(event[:idx])
	second := strings.TrimLeft(event[idx:], " \t")
	return []string{first, second}
}
