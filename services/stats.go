package services

import (
	"math"

	"github.com/knockandknow/backend/models"
)

// DistributionBuckets are the histogram bands of the overview view, as
// percentage of the maximum possible score. Bands are half-open except the
// top one, which is closed at 100.
var DistributionBuckets = []string{"90-100", "80-89", "70-79", "60-69", "below60"}

// QuizStats summarizes participant performance for one quiz.
type QuizStats struct {
	TotalParticipants int            `json:"total_participants"`
	TotalQuestions    int            `json:"total_questions"`
	MaxPossibleScore  int            `json:"max_possible_score"`
	AverageScore      float64        `json:"average_score"`
	HighestScore      int            `json:"highest_score"`
	LowestScore       int            `json:"lowest_score"`
	Distribution      map[string]int `json:"distribution"`
}

// ComputeStats derives count, mean (one decimal place), max, min and the
// five-bucket score distribution. Every question is worth one point, so the
// maximum possible score equals the question count. An empty participant
// list reports zeros everywhere; there is no division by zero.
func ComputeStats(participants []models.Participant, totalQuestions int) QuizStats {
	stats := QuizStats{
		TotalParticipants: len(participants),
		TotalQuestions:    totalQuestions,
		MaxPossibleScore:  totalQuestions,
		Distribution:      make(map[string]int, len(DistributionBuckets)),
	}
	for _, bucket := range DistributionBuckets {
		stats.Distribution[bucket] = 0
	}

	if len(participants) == 0 {
		return stats
	}

	sum := 0
	stats.HighestScore = participants[0].Score
	stats.LowestScore = participants[0].Score
	for _, p := range participants {
		sum += p.Score
		if p.Score > stats.HighestScore {
			stats.HighestScore = p.Score
		}
		if p.Score < stats.LowestScore {
			stats.LowestScore = p.Score
		}

		stats.Distribution[bucketFor(p.Score, totalQuestions)]++
	}

	mean := float64(sum) / float64(len(participants))
	stats.AverageScore = math.Round(mean*10) / 10

	return stats
}

func bucketFor(score, maxScore int) string {
	var pct float64
	if maxScore > 0 {
		pct = float64(score) / float64(maxScore) * 100
	}

	switch {
	case pct >= 90:
		return "90-100"
	case pct >= 80:
		return "80-89"
	case pct >= 70:
		return "70-79"
	case pct >= 60:
		return "60-69"
	default:
		return "below60"
	}
}
