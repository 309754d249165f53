package services

import (
	"testing"
)

func TestComputeStatsEmptyParticipants(t *testing.T) {
	stats := ComputeStats(nil, 10)

	if stats.TotalParticipants != 0 {
		t.Fatalf("expected 0 participants, got %d", stats.TotalParticipants)
	}
	if stats.AverageScore != 0 || stats.HighestScore != 0 || stats.LowestScore != 0 {
		t.Fatalf("expected zeroed summary, got %+v", stats)
	}
	for bucket, count := range stats.Distribution {
		if count != 0 {
			t.Fatalf("expected empty bucket %s, got %d", bucket, count)
		}
	}
}

func TestComputeStatsZeroQuestions(t *testing.T) {
	// No questions means maxScore 0; bucketing must not divide by zero.
	stats := ComputeStats(participantsWithScores(0, 0), 0)

	if stats.TotalParticipants != 2 {
		t.Fatalf("expected 2 participants, got %d", stats.TotalParticipants)
	}
	if stats.Distribution["below60"] != 2 {
		t.Fatalf("expected both participants in below60, got %+v", stats.Distribution)
	}
}

func TestComputeStatsSummary(t *testing.T) {
	stats := ComputeStats(participantsWithScores(9, 7, 4), 10)

	if stats.HighestScore != 9 {
		t.Fatalf("expected highest 9, got %d", stats.HighestScore)
	}
	if stats.LowestScore != 4 {
		t.Fatalf("expected lowest 4, got %d", stats.LowestScore)
	}
	// (9+7+4)/3 = 6.666..., reported to one decimal place.
	if stats.AverageScore != 6.7 {
		t.Fatalf("expected average 6.7, got %v", stats.AverageScore)
	}
	if stats.MaxPossibleScore != 10 {
		t.Fatalf("expected max possible 10, got %d", stats.MaxPossibleScore)
	}
}

func TestComputeStatsDistributionBands(t *testing.T) {
	// Out of 10 questions: 10 => 100%, 9 => 90%, 8 => 80%, 7 => 70%,
	// 6 => 60%, 5 => 50%.
	stats := ComputeStats(participantsWithScores(10, 9, 8, 7, 6, 5), 10)

	want := map[string]int{
		"90-100":  2,
		"80-89":   1,
		"70-79":   1,
		"60-69":   1,
		"below60": 1,
	}
	for bucket, count := range want {
		if stats.Distribution[bucket] != count {
			t.Fatalf("bucket %s = %d, want %d (full: %+v)", bucket, stats.Distribution[bucket], count, stats.Distribution)
		}
	}
}

func TestComputeStatsTopBandClosedAtHundred(t *testing.T) {
	stats := ComputeStats(participantsWithScores(10), 10)

	if stats.Distribution["90-100"] != 1 {
		t.Fatalf("perfect score must land in 90-100, got %+v", stats.Distribution)
	}
}
