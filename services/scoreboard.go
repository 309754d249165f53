package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/knockandknow/backend/models"
)

// RankedParticipant is a participant annotated with its competition rank.
type RankedParticipant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"name"`
	Score       int       `json:"score"`
	Avatar      string    `json:"avatar"`
	CompletedAt time.Time `json:"completed_at"`
	Rank        int       `json:"rank"`
}

// Rank sorts participants by score descending and assigns competition ranks:
// equal scores share the rank of the first of the tie, and the next distinct
// score resumes at its 1-based sorted position, so ranks can skip.
// [90, 90, 80] ranks as [1, 1, 3].
func Rank(participants []models.Participant) []RankedParticipant {
	sorted := make([]models.Participant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	ranked := make([]RankedParticipant, len(sorted))
	for i, p := range sorted {
		rank := i + 1
		if i > 0 && sorted[i-1].Score == p.Score {
			rank = ranked[i-1].Rank
		}
		ranked[i] = RankedParticipant{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Avatar:      p.Avatar,
			CompletedAt: p.CompletedAt,
			Rank:        rank,
		}
	}
	return ranked
}
