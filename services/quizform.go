package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/knockandknow/backend/models"
	"gorm.io/datatypes"
)

var validate = validator.New()

const defaultTimeLimitSeconds = 30
const defaultRoomTimeLimitMinutes = 60
const maxOptionsPerQuestion = 4

func defaultOptions() []string {
	return []string{"", "", "", ""}
}

// FieldError is a single field-level validation failure; the frontend renders
// it inline next to the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors from a quiz form submission. It is
// never fatal: handlers turn it into a 422 and the form stays editable.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(msgs, "; ")
}

type PhaseInput struct {
	Type         string `json:"type" validate:"required,oneof=multipleChoice trueFalse"`
	Instructions string `json:"instructions"`
	TimeLimit    int    `json:"time_limit"`
}

// QuestionInput carries the union-typed correct answer as decoded JSON: a
// string for multipleChoice, a bool for trueFalse. Anything else is rejected
// at submission.
type QuestionInput struct {
	Type          string   `json:"type" validate:"required,oneof=multipleChoice trueFalse"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer any      `json:"correct_answer"`
	TimeLimit     int      `json:"time_limit"`
	Phase         int      `json:"phase"`
}

type RoomInput struct {
	Name      string     `json:"name"`
	Capacity  int        `json:"capacity"`
	TimeLimit int        `json:"time_limit"`
	Passcode  string     `json:"passcode"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at"`
}

// QuizForm is the authoring form state: quiz details plus the three parallel
// repeatable collections (phases, questions, rooms). Mutations mirror the
// two-step wizard; Validate enforces the submission rules.
type QuizForm struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	ExamPhases    []PhaseInput    `json:"exam_phases" validate:"min=1,dive"`
	Questions     []QuestionInput `json:"questions" validate:"min=1,dive"`
	StartDateTime time.Time       `json:"start_date_time"`
	EndDateTime   time.Time       `json:"end_date_time"`
	Rooms         []RoomInput     `json:"rooms"`
}

// NewQuizForm seeds the form the way the create view opens: one default
// multipleChoice phase and empty question/room lists.
func NewQuizForm() *QuizForm {
	now := time.Now()
	return &QuizForm{
		ExamPhases: []PhaseInput{{
			Type:      models.QuestionTypeMultipleChoice,
			TimeLimit: defaultTimeLimitSeconds,
		}},
		Questions:     []QuestionInput{},
		Rooms:         []RoomInput{},
		StartDateTime: now,
		EndDateTime:   now,
	}
}

// AddPhase appends a default multipleChoice phase.
func (f *QuizForm) AddPhase() {
	f.ExamPhases = append(f.ExamPhases, PhaseInput{
		Type:      models.QuestionTypeMultipleChoice,
		TimeLimit: defaultTimeLimitSeconds,
	})
}

// RemovePhase drops the phase at idx. Questions still referencing it are left
// untouched; they fail phase-range validation at submit, like the original.
func (f *QuizForm) RemovePhase(idx int) error {
	if idx < 0 || idx >= len(f.ExamPhases) {
		return fmt.Errorf("phase index %d out of range", idx)
	}
	f.ExamPhases = append(f.ExamPhases[:idx], f.ExamPhases[idx+1:]...)
	return nil
}

// AddQuestion appends a question under the phase at phaseIdx, inheriting the
// phase's current type: multipleChoice seeds four blank options and an empty
// answer, trueFalse seeds no options and answer false.
func (f *QuizForm) AddQuestion(phaseIdx int) error {
	if phaseIdx < 0 || phaseIdx >= len(f.ExamPhases) {
		return fmt.Errorf("phase index %d out of range", phaseIdx)
	}

	phaseType := f.ExamPhases[phaseIdx].Type
	q := QuestionInput{
		Type:      phaseType,
		TimeLimit: defaultTimeLimitSeconds,
		Phase:     phaseIdx + 1,
	}
	if phaseType == models.QuestionTypeMultipleChoice {
		q.Options = defaultOptions()
		q.CorrectAnswer = ""
	} else {
		q.Options = []string{}
		q.CorrectAnswer = false
	}

	f.Questions = append(f.Questions, q)
	return nil
}

func (f *QuizForm) RemoveQuestion(idx int) error {
	if idx < 0 || idx >= len(f.Questions) {
		return fmt.Errorf("question index %d out of range", idx)
	}
	f.Questions = append(f.Questions[:idx], f.Questions[idx+1:]...)
	return nil
}

// SetPhaseType changes a phase's type and cascades to every question bound to
// it: the question is retyped in place and its options and correct answer are
// reset to the new type's defaults. Per-question edits under the old type do
// not survive the cascade.
func (f *QuizForm) SetPhaseType(phaseIdx int, phaseType string) error {
	if phaseIdx < 0 || phaseIdx >= len(f.ExamPhases) {
		return fmt.Errorf("phase index %d out of range", phaseIdx)
	}
	if phaseType != models.QuestionTypeMultipleChoice && phaseType != models.QuestionTypeTrueFalse {
		return fmt.Errorf("unknown phase type %q", phaseType)
	}

	f.ExamPhases[phaseIdx].Type = phaseType
	for i := range f.Questions {
		if f.Questions[i].Phase != phaseIdx+1 {
			continue
		}
		f.Questions[i].Type = phaseType
		if phaseType == models.QuestionTypeTrueFalse {
			f.Questions[i].Options = []string{}
			f.Questions[i].CorrectAnswer = false
		} else {
			f.Questions[i].Options = defaultOptions()
			f.Questions[i].CorrectAnswer = ""
		}
	}
	return nil
}

// AddRoom appends a room with the step-2 defaults.
func (f *QuizForm) AddRoom() {
	f.Rooms = append(f.Rooms, RoomInput{
		Capacity:  1,
		TimeLimit: defaultRoomTimeLimitMinutes,
		Status:    models.RoomStatusPending,
	})
}

func (f *QuizForm) RemoveRoom(idx int) error {
	if idx < 0 || idx >= len(f.Rooms) {
		return fmt.Errorf("room index %d out of range", idx)
	}
	f.Rooms = append(f.Rooms[:idx], f.Rooms[idx+1:]...)
	return nil
}

// ValidateQuestions is the step-1 gate on the "Next" transition: at least one
// question, and no question with empty text.
func (f *QuizForm) ValidateQuestions() error {
	if len(f.Questions) == 0 {
		return &ValidationError{Fields: []FieldError{
			{Field: "questions", Message: "at least one question is required"},
		}}
	}

	var fields []FieldError
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Question) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("questions.%d.question", i),
				Message: "question text is required",
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate runs the full submission check: schema shape, step-1 rules, room
// rules and the per-type correct-answer rules. On success the rooms are
// stamped pending with a nil start time, ready to persist.
func (f *QuizForm) Validate() error {
	f.applyDefaults()

	var fields []FieldError

	if err := validate.Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, FieldError{
					Field:   strings.ToLower(ve.Namespace()),
					Message: fmt.Sprintf("failed on the '%s' rule", ve.Tag()),
				})
			}
		} else {
			return err
		}
	}

	if verr, ok := f.ValidateQuestions().(*ValidationError); ok {
		fields = append(fields, verr.Fields...)
	}

	for i, q := range f.Questions {
		fields = append(fields, f.validateQuestion(i, q)...)
	}

	if len(f.Rooms) == 0 {
		fields = append(fields, FieldError{Field: "rooms", Message: "at least one room is required"})
	}
	for i, room := range f.Rooms {
		prefix := fmt.Sprintf("rooms.%d", i)
		if strings.TrimSpace(room.Name) == "" {
			fields = append(fields, FieldError{Field: prefix + ".name", Message: "room name is required"})
		}
		if strings.TrimSpace(room.Passcode) == "" {
			fields = append(fields, FieldError{Field: prefix + ".passcode", Message: "passcode is required"})
		}
		if room.Capacity < 1 {
			fields = append(fields, FieldError{Field: prefix + ".capacity", Message: "capacity must be at least 1"})
		}
		if room.TimeLimit < 1 {
			fields = append(fields, FieldError{Field: prefix + ".time_limit", Message: "time limit must be at least 1 minute"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	for i := range f.Rooms {
		f.Rooms[i].Status = models.RoomStatusPending
		f.Rooms[i].StartedAt = nil
	}
	return nil
}

func (f *QuizForm) validateQuestion(idx int, q QuestionInput) []FieldError {
	prefix := fmt.Sprintf("questions.%d", idx)
	var fields []FieldError

	if q.Phase < 1 || q.Phase > len(f.ExamPhases) {
		fields = append(fields, FieldError{
			Field:   prefix + ".phase",
			Message: fmt.Sprintf("phase %d does not exist", q.Phase),
		})
	}

	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		answer, ok := q.CorrectAnswer.(string)
		if !ok || answer == "" {
			fields = append(fields, FieldError{
				Field:   prefix + ".correct_answer",
				Message: "a correct answer must be selected",
			})
			break
		}
		if len(q.Options) > maxOptionsPerQuestion {
			fields = append(fields, FieldError{
				Field:   prefix + ".options",
				Message: fmt.Sprintf("at most %d options are allowed", maxOptionsPerQuestion),
			})
		}
		found := false
		for _, opt := range q.Options {
			if opt != "" && opt == answer {
				found = true
				break
			}
		}
		if !found {
			fields = append(fields, FieldError{
				Field:   prefix + ".correct_answer",
				Message: "correct answer must match one of the options",
			})
		}
	case models.QuestionTypeTrueFalse:
		if _, ok := q.CorrectAnswer.(bool); !ok {
			fields = append(fields, FieldError{
				Field:   prefix + ".correct_answer",
				Message: "correct answer must be true or false",
			})
		}
	}

	return fields
}

func (f *QuizForm) applyDefaults() {
	for i := range f.ExamPhases {
		if f.ExamPhases[i].TimeLimit <= 0 {
			f.ExamPhases[i].TimeLimit = defaultTimeLimitSeconds
		}
	}
	for i := range f.Questions {
		if f.Questions[i].TimeLimit <= 0 {
			f.Questions[i].TimeLimit = defaultTimeLimitSeconds
		}
		if f.Questions[i].Phase <= 0 {
			f.Questions[i].Phase = 1
		}
	}
	for i := range f.Rooms {
		// 0 means the field was omitted; a negative value is an explicit
		// input and must fail validation instead of being defaulted.
		if f.Rooms[i].TimeLimit == 0 {
			f.Rooms[i].TimeLimit = defaultRoomTimeLimitMinutes
		}
	}
}

// ToModel converts a validated form into the persistable quiz record. Phase
// positions are reassigned from slice order; trueFalse answers are stored as
// "true"/"false" text.
func (f *QuizForm) ToModel(teacherID uuid.UUID) models.Quiz {
	quiz := models.Quiz{
		Name:          f.Name,
		Description:   f.Description,
		Status:        models.QuizStatusDraft,
		StartDateTime: f.StartDateTime,
		EndDateTime:   f.EndDateTime,
		TeacherID:     teacherID,
	}

	for i, phase := range f.ExamPhases {
		quiz.ExamPhases = append(quiz.ExamPhases, models.ExamPhase{
			Position:         i + 1,
			Type:             phase.Type,
			Instructions:     phase.Instructions,
			TimeLimitSeconds: phase.TimeLimit,
		})
	}

	for _, q := range f.Questions {
		answer := ""
		switch v := q.CorrectAnswer.(type) {
		case string:
			answer = v
		case bool:
			answer = strconv.FormatBool(v)
		}
		quiz.Questions = append(quiz.Questions, models.Question{
			Type:             q.Type,
			Text:             q.Question,
			Options:          datatypes.NewJSONSlice(q.Options),
			CorrectAnswer:    answer,
			TimeLimitSeconds: q.TimeLimit,
			Phase:            q.Phase,
		})
	}

	for _, room := range f.Rooms {
		quiz.Rooms = append(quiz.Rooms, models.Room{
			Name:             room.Name,
			Capacity:         room.Capacity,
			TimeLimitMinutes: room.TimeLimit,
			Passcode:         room.Passcode,
			Status:           models.RoomStatusPending,
			StartedAt:        nil,
		})
	}

	return quiz
}

// QuizFormFromModel rebuilds the form for the edit view. A quiz loaded this
// way and re-submitted unmodified validates and converts back to an
// equivalent record.
func QuizFormFromModel(quiz models.Quiz) *QuizForm {
	form := &QuizForm{
		Name:          quiz.Name,
		Description:   quiz.Description,
		StartDateTime: quiz.StartDateTime,
		EndDateTime:   quiz.EndDateTime,
		Questions:     []QuestionInput{},
		Rooms:         []RoomInput{},
	}

	for _, phase := range quiz.ExamPhases {
		form.ExamPhases = append(form.ExamPhases, PhaseInput{
			Type:         phase.Type,
			Instructions: phase.Instructions,
			TimeLimit:    phase.TimeLimitSeconds,
		})
	}

	for _, q := range quiz.Questions {
		var answer any = q.CorrectAnswer
		if q.Type == models.QuestionTypeTrueFalse {
			answer = q.CorrectAnswer == "true"
		}
		form.Questions = append(form.Questions, QuestionInput{
			Type:          q.Type,
			Question:      q.Text,
			Options:       []string(q.Options),
			CorrectAnswer: answer,
			TimeLimit:     q.TimeLimitSeconds,
			Phase:         q.Phase,
		})
	}

	for _, room := range quiz.Rooms {
		form.Rooms = append(form.Rooms, RoomInput{
			Name:      room.Name,
			Capacity:  room.Capacity,
			TimeLimit: room.TimeLimitMinutes,
			Passcode:  room.Passcode,
			Status:    room.Status,
			StartedAt: room.StartedAt,
		})
	}

	return form
}
