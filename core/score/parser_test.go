package score

import "testing"

func TestParseScoreResponse(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantScore   float64
		wantSummary string
		wantErr     bool
	}{
		{
			name:        "clean JSON",
			reply:       `{"score": 8.5, "summary": "Big news."}`,
			wantScore:   8.5,
			wantSummary: "Big news.",
		},
		{
			name:        "JSON surrounded by chatter",
			reply:       "Sure! Here is my evaluation:\n{\"score\": 7, \"summary\": \"Relevant.\"}\nHope that helps.",
			wantScore:   7,
			wantSummary: "Relevant.",
		},
		{
			name:        "score above ten is clamped",
			reply:       `{"score": 42, "summary": "Very exciting."}`,
			wantScore:   10,
			wantSummary: "Very exciting.",
		},
		{
			name:        "negative score is floored",
			reply:       `{"score": -3, "summary": "Nope."}`,
			wantScore:   0,
			wantSummary: "Nope.",
		},
		{
			name:        "quoted numeric score",
			reply:       `{"score": "6", "summary": "Quoted."}`,
			wantScore:   6,
			wantSummary: "Quoted.",
		},
		{
			name:        "free text fallback",
			reply:       "Score: 6.5\nSummary: A tangentially related piece.",
			wantScore:   6.5,
			wantSummary: "A tangentially related piece.",
		},
		{
			name:      "free text score without summary",
			reply:     "Relevance score: 4",
			wantScore: 4,
		},
		{
			name:    "gibberish",
			reply:   "I cannot help with that request.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
		{
			name:    "JSON without score falls through to error",
			reply:   `{"summary": "missing the number"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, summary, err := ParseScoreResponse(tt.reply)

			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if score != 0 || summary != "" {
					t.Errorf("failed parse should yield (0, \"\"), got (%v, %q)", score, summary)
				}
				return
			}
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", summary, tt.wantSummary)
			}
		})
	}
}
