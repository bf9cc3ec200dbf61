package pdfreader

import "testing"

func TestScoreEmptyIsMinimal(t *testing.T) {
	if score("   \n  \n") != minScore {
		t.Fatalf("score(blank) = %d, want minScore", score("   \n  \n"))
	}
}

func TestScorePrefersTableLikeText(t *testing.T) {
	tableLike := "日期        星期   事由\n2026/08/01  六     開學典禮\n2026/08/02  日     社團博覽會"
	brokenText := "?Identity-H Unimplemented??Identity-H Unimplemented?"

	if score(tableLike) <= score(brokenText) {
		t.Fatalf("expected table-like candidate to outscore broken candidate: %d vs %d",
			score(tableLike), score(brokenText))
	}
}

func TestArgmaxCandidateTieBreaksEarliest(t *testing.T) {
	candidates := []string{"", ""}
	if got := argmaxCandidate(candidates); got != 0 {
		t.Fatalf("argmaxCandidate tie = %d, want 0", got)
	}
}

func TestArgmaxCandidatePicksHighestScoring(t *testing.T) {
	candidates := []string{
		"?Identity-H Unimplemented?",
		"2026/08/01  六  開學典禮",
	}
	if got := argmaxCandidate(candidates); got != 1 {
		t.Fatalf("argmaxCandidate = %d, want 1", got)
	}
}

func TestIsDateLikeLine(t *testing.T) {
	if !isDateLikeLine("2026/08/01 開學典禮") {
		t.Fatal("expected date-like line to be detected")
	}
	if isDateLikeLine("開學典禮") {
		t.Fatal("expected non-date line to not be flagged date-like")
	}
}
