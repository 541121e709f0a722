// ABOUTME: Model reply parsing with ordered fallbacks
// ABOUTME: JSON object first, then free-text regex, then a zero-score degradation

package score

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"newsdigest/core/domain"
	coreerrors "newsdigest/core/errors"
)

var (
	jsonObjectRe   = regexp.MustCompile(`(?s)\{.*?\}`)
	scoreTokenRe   = regexp.MustCompile(`(?i)score[:\s]+(\d+(?:\.\d+)?)`)
	summaryTokenRe = regexp.MustCompile(`(?is)summary[:\s]+(.+)`)
)

// ParseScoreResponse extracts a relevance score and summary from a raw
// model reply. Each fallback step is independent of how the previous one
// failed:
//
//  1. first brace-delimited JSON object in the reply
//  2. regex extraction of "score: <n>" and "summary: <text>" tokens
//  3. an error; the caller records (0, "") and keeps going
//
// The returned score is clamped to [0, MaxScore].
func ParseScoreResponse(reply string) (float64, string, error) {
	if score, summary, ok := parseJSONObject(reply); ok {
		return domain.ClampScore(score), summary, nil
	}

	if score, summary, ok := parseFreeText(reply); ok {
		return domain.ClampScore(score), summary, nil
	}

	return 0, "", &coreerrors.ScoreParseError{Message: "no score found in reply"}
}

func parseJSONObject(reply string) (float64, string, bool) {
	match := jsonObjectRe.FindString(reply)
	if match == "" {
		return 0, "", false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return 0, "", false
	}

	score, ok := asNumber(payload["score"])
	if !ok {
		return 0, "", false
	}

	summary, _ := payload["summary"].(string)
	return score, summary, true
}

func parseFreeText(reply string) (float64, string, bool) {
	scoreMatch := scoreTokenRe.FindStringSubmatch(reply)
	if scoreMatch == nil {
		return 0, "", false
	}

	score, err := strconv.ParseFloat(scoreMatch[1], 64)
	if err != nil {
		return 0, "", false
	}

	summary := ""
	if m := summaryTokenRe.FindStringSubmatch(reply); m != nil {
		summary = strings.TrimSpace(m[1])
	}

	return score, summary, true
}

// asNumber coerces a decoded JSON value to float64, accepting numeric
// strings since small models sometimes quote the score.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
