package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/knockandknow/backend/database"
	"github.com/knockandknow/backend/models"
	"github.com/knockandknow/backend/services"
	"github.com/knockandknow/backend/utils"
	"gorm.io/gorm"
)

const migrationGuidance = "The database schema is missing required tables or columns. Restart the API so automatic migration can run, then retry."

func sessionTeacherID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uuid.Parse(claims["user_id"].(string))
}

func validationFailure(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Quiz validation failed",
			"fields": verr.Fields,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func CreateQuiz(c *fiber.Ctx) error {
	teacherID, err := sessionTeacherID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var form services.QuizForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := form.Validate(); err != nil {
		return validationFailure(c, err)
	}

	quiz := form.ToModel(teacherID)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range quiz.Rooms {
			code, err := utils.GenerateUniqueJoinCode(tx)
			if err != nil {
				return err
			}
			quiz.Rooms[i].JoinCode = code
		}
		return tx.Create(&quiz).Error
	})
	if err != nil {
		log.Printf("Error creating quiz for teacher %s: %v", teacherID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func ListQuizzes(c *fiber.Ctx) error {
	teacherID, err := sessionTeacherID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var quizzes []models.Quiz
	err = database.DB.
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		log.Printf("Error listing quizzes for teacher %s: %v", teacherID, err)
		if database.IsSchemaError(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":    "migration_required",
				"guidance": migrationGuidance,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
	}

	return c.JSON(quizzes)
}

func findOwnedQuiz(c *fiber.Ctx, preload bool) (*models.Quiz, error) {
	teacherID, err := sessionTeacherID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	query := database.DB
	if preload {
		query = query.
			Preload("ExamPhases", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Preload("Questions").
			Preload("Rooms")
	}

	var quiz models.Quiz
	if err := query.First(&quiz, "id = ? AND teacher_id = ?", quizID, teacherID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return &quiz, nil
}

func GetQuiz(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, true)
	if quiz == nil {
		return errResp
	}
	return c.JSON(quiz)
}

// GetQuizForm returns the quiz in authoring-form shape for the edit view.
// Re-submitting the payload unmodified produces an equivalent quiz.
func GetQuizForm(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, true)
	if quiz == nil {
		return errResp
	}
	return c.JSON(services.QuizFormFromModel(*quiz))
}

// UpdateQuiz re-validates and replaces the whole quiz. Editing is only
// offered while the quiz is still a draft; published and completed quizzes
// are read-only. Last write wins, there is no concurrency check.
func UpdateQuiz(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, false)
	if quiz == nil {
		return errResp
	}

	if quiz.Status != models.QuizStatusDraft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Only draft quizzes can be edited"})
	}

	var form services.QuizForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := form.Validate(); err != nil {
		return validationFailure(c, err)
	}

	replacement := form.ToModel(quiz.TeacherID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.ExamPhase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Room{}).Error; err != nil {
			return err
		}

		quiz.Name = replacement.Name
		quiz.Description = replacement.Description
		quiz.StartDateTime = replacement.StartDateTime
		quiz.EndDateTime = replacement.EndDateTime
		quiz.UpdatedAt = time.Now()
		if err := tx.Save(quiz).Error; err != nil {
			return err
		}

		for i := range replacement.ExamPhases {
			replacement.ExamPhases[i].QuizID = quiz.ID
		}
		for i := range replacement.Questions {
			replacement.Questions[i].QuizID = quiz.ID
		}
		for i := range replacement.Rooms {
			replacement.Rooms[i].QuizID = quiz.ID
			code, err := utils.GenerateUniqueJoinCode(tx)
			if err != nil {
				return err
			}
			replacement.Rooms[i].JoinCode = code
		}

		if err := tx.Create(&replacement.ExamPhases).Error; err != nil {
			return err
		}
		if err := tx.Create(&replacement.Questions).Error; err != nil {
			return err
		}
		return tx.Create(&replacement.Rooms).Error
	})
	if err != nil {
		log.Printf("Error updating quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update quiz"})
	}

	quiz.ExamPhases = replacement.ExamPhases
	quiz.Questions = replacement.Questions
	quiz.Rooms = replacement.Rooms
	return c.JSON(quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	teacherID, err := sessionTeacherID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	result := database.DB.Delete(&models.Quiz{}, "id = ? AND teacher_id = ?", quizID, teacherID)
	if result.Error != nil {
		log.Printf("Error deleting quiz %s: %v", quizID, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete quiz"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
