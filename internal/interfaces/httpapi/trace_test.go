package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"httpapi.Handler.IngestMessage", true},
		{"httpapi.Handler.GetLeaderboard", true},
		{"httpapi.writeJSON", false},
		{"usecase.StatsService.GetGlobalStats", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := shouldCreateHTTPAPISpan(tc.name); got != tc.want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
