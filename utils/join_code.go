package utils

import (
	"math/rand"
	"time"

	"github.com/knockandknow/backend/models"
	"gorm.io/gorm"
)

const joinCodeLength = 6
const letterBytes = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateUniqueJoinCode produces a short shareable code students knock on a
// room with. Ambiguous characters (0/O, 1/I) are excluded from the alphabet.
func GenerateUniqueJoinCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, joinCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var room models.Room
		err := tx.Where("join_code = ?", code).First(&room).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
