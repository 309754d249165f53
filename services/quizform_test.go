package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/knockandknow/backend/models"
)

func validForm() *QuizForm {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &QuizForm{
		Name:        "Fractions Review",
		Description: "End of unit check",
		ExamPhases: []PhaseInput{
			{Type: models.QuestionTypeMultipleChoice, TimeLimit: 30},
			{Type: models.QuestionTypeTrueFalse, TimeLimit: 20, Instructions: "Answer true or false"},
		},
		Questions: []QuestionInput{
			{
				Type:          models.QuestionTypeMultipleChoice,
				Question:      "What is 1/2 + 1/4?",
				Options:       []string{"3/4", "2/6", "1/8", ""},
				CorrectAnswer: "3/4",
				TimeLimit:     30,
				Phase:         1,
			},
			{
				Type:          models.QuestionTypeTrueFalse,
				Question:      "1/3 is greater than 1/2.",
				Options:       []string{},
				CorrectAnswer: false,
				TimeLimit:     20,
				Phase:         2,
			},
		},
		StartDateTime: now,
		EndDateTime:   now.Add(2 * time.Hour),
		Rooms: []RoomInput{
			{Name: "Room A", Capacity: 25, TimeLimit: 45, Passcode: "knock123"},
		},
	}
}

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return verr.Fields
}

func hasFieldError(fields []FieldError, substr string) bool {
	for _, f := range fields {
		if strings.Contains(f.Field, substr) {
			return true
		}
	}
	return false
}

func TestNewQuizFormSeedsDefaultPhase(t *testing.T) {
	form := NewQuizForm()

	if len(form.ExamPhases) != 1 {
		t.Fatalf("expected 1 seeded phase, got %d", len(form.ExamPhases))
	}
	if form.ExamPhases[0].Type != models.QuestionTypeMultipleChoice {
		t.Fatalf("expected multipleChoice seed, got %s", form.ExamPhases[0].Type)
	}
	if form.ExamPhases[0].TimeLimit != 30 {
		t.Fatalf("expected default time limit 30, got %d", form.ExamPhases[0].TimeLimit)
	}
	if len(form.Questions) != 0 || len(form.Rooms) != 0 {
		t.Fatalf("expected empty questions and rooms")
	}
}

func TestAddQuestionInheritsPhaseType(t *testing.T) {
	form := NewQuizForm()
	form.AddPhase()
	if err := form.SetPhaseType(1, models.QuestionTypeTrueFalse); err != nil {
		t.Fatalf("set phase type: %v", err)
	}

	if err := form.AddQuestion(0); err != nil {
		t.Fatalf("add question: %v", err)
	}
	if err := form.AddQuestion(1); err != nil {
		t.Fatalf("add question: %v", err)
	}

	mc := form.Questions[0]
	if mc.Type != models.QuestionTypeMultipleChoice || mc.Phase != 1 {
		t.Fatalf("unexpected multipleChoice seed: %+v", mc)
	}
	if len(mc.Options) != 4 {
		t.Fatalf("expected 4 blank options, got %v", mc.Options)
	}
	if mc.CorrectAnswer != "" {
		t.Fatalf("expected empty answer, got %v", mc.CorrectAnswer)
	}

	tf := form.Questions[1]
	if tf.Type != models.QuestionTypeTrueFalse || tf.Phase != 2 {
		t.Fatalf("unexpected trueFalse seed: %+v", tf)
	}
	if len(tf.Options) != 0 {
		t.Fatalf("expected no options, got %v", tf.Options)
	}
	if tf.CorrectAnswer != false {
		t.Fatalf("expected answer false, got %v", tf.CorrectAnswer)
	}
}

func TestAddQuestionRejectsBadPhaseIndex(t *testing.T) {
	form := NewQuizForm()
	if err := form.AddQuestion(3); err == nil {
		t.Fatal("expected error for out-of-range phase index")
	}
}

func TestSetPhaseTypeCascadesToBoundQuestions(t *testing.T) {
	form := validForm()

	// Retype phase 1 from multipleChoice to trueFalse: its question must be
	// rewritten in place, the phase-2 question untouched.
	if err := form.SetPhaseType(0, models.QuestionTypeTrueFalse); err != nil {
		t.Fatalf("set phase type: %v", err)
	}

	q := form.Questions[0]
	if q.Type != models.QuestionTypeTrueFalse {
		t.Fatalf("expected retyped question, got %s", q.Type)
	}
	if len(q.Options) != 0 {
		t.Fatalf("expected options cleared, got %v", q.Options)
	}
	if q.CorrectAnswer != false {
		t.Fatalf("expected answer reset to false, got %v", q.CorrectAnswer)
	}
	if q.Question != "What is 1/2 + 1/4?" {
		t.Fatalf("question text must survive the cascade, got %q", q.Question)
	}

	other := form.Questions[1]
	if other.Type != models.QuestionTypeTrueFalse || other.CorrectAnswer != false {
		t.Fatalf("phase-2 question should be untouched: %+v", other)
	}
}

func TestSetPhaseTypeCascadeBackToMultipleChoice(t *testing.T) {
	form := validForm()
	if err := form.SetPhaseType(1, models.QuestionTypeMultipleChoice); err != nil {
		t.Fatalf("set phase type: %v", err)
	}

	q := form.Questions[1]
	if q.Type != models.QuestionTypeMultipleChoice {
		t.Fatalf("expected retyped question, got %s", q.Type)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 blank options, got %v", q.Options)
	}
	if q.CorrectAnswer != "" {
		t.Fatalf("expected answer reset to empty string, got %v", q.CorrectAnswer)
	}
}

func TestSetPhaseTypeRejectsUnknownType(t *testing.T) {
	form := validForm()
	if err := form.SetPhaseType(0, "essay"); err == nil {
		t.Fatal("expected error for unknown phase type")
	}
}

func TestValidateQuestionsStepGate(t *testing.T) {
	form := NewQuizForm()
	if err := form.ValidateQuestions(); err == nil {
		t.Fatal("expected error with zero questions")
	}

	form = validForm()
	form.Questions[1].Question = "  "
	fields := fieldErrors(t, form.ValidateQuestions())
	if !hasFieldError(fields, "questions.1.question") {
		t.Fatalf("expected empty-text error, got %v", fields)
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	form := validForm()
	form.Rooms[0].Status = models.RoomStatusInProgress
	started := time.Now()
	form.Rooms[0].StartedAt = &started

	if err := form.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	// Submission stamps every room back to pending with no start time.
	if form.Rooms[0].Status != models.RoomStatusPending {
		t.Fatalf("expected room stamped pending, got %s", form.Rooms[0].Status)
	}
	if form.Rooms[0].StartedAt != nil {
		t.Fatalf("expected nil startedAt, got %v", form.Rooms[0].StartedAt)
	}
}

func TestValidateRoomRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*QuizForm)
		wantPath string
	}{
		{"no rooms", func(f *QuizForm) { f.Rooms = nil }, "rooms"},
		{"missing name", func(f *QuizForm) { f.Rooms[0].Name = "" }, "rooms.0.name"},
		{"missing passcode", func(f *QuizForm) { f.Rooms[0].Passcode = "" }, "rooms.0.passcode"},
		{"zero capacity", func(f *QuizForm) { f.Rooms[0].Capacity = 0 }, "rooms.0.capacity"},
		{"negative capacity", func(f *QuizForm) { f.Rooms[0].Capacity = -2 }, "rooms.0.capacity"},
		{"negative time limit", func(f *QuizForm) { f.Rooms[0].TimeLimit = -5 }, "rooms.0.time_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)
			fields := fieldErrors(t, form.Validate())
			if !hasFieldError(fields, tt.wantPath) {
				t.Fatalf("expected error on %s, got %v", tt.wantPath, fields)
			}
		})
	}
}

func TestValidateRoomTimeLimitDefaultsWhenUnset(t *testing.T) {
	form := validForm()
	form.Rooms[0].TimeLimit = 0

	if err := form.Validate(); err != nil {
		t.Fatalf("expected default to apply, got %v", err)
	}
	if form.Rooms[0].TimeLimit != 60 {
		t.Fatalf("expected default time limit 60, got %d", form.Rooms[0].TimeLimit)
	}
}

func TestValidateCorrectAnswerRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuizForm)
	}{
		{"multipleChoice empty answer", func(f *QuizForm) { f.Questions[0].CorrectAnswer = "" }},
		{"multipleChoice answer not an option", func(f *QuizForm) { f.Questions[0].CorrectAnswer = "5/8" }},
		{"multipleChoice boolean answer", func(f *QuizForm) { f.Questions[0].CorrectAnswer = true }},
		{"trueFalse string answer", func(f *QuizForm) { f.Questions[1].CorrectAnswer = "true" }},
		{"trueFalse nil answer", func(f *QuizForm) { f.Questions[1].CorrectAnswer = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)
			fields := fieldErrors(t, form.Validate())
			if !hasFieldError(fields, "correct_answer") {
				t.Fatalf("expected correct_answer error, got %v", fields)
			}
		})
	}
}

func TestValidateRejectsAnswerMatchingBlankOption(t *testing.T) {
	form := validForm()
	form.Questions[0].Options = []string{"", "", "", ""}
	form.Questions[0].CorrectAnswer = ""

	fields := fieldErrors(t, form.Validate())
	if !hasFieldError(fields, "correct_answer") {
		t.Fatalf("expected correct_answer error, got %v", fields)
	}
}

func TestValidateRejectsOutOfRangePhaseReference(t *testing.T) {
	form := validForm()
	form.Questions[0].Phase = 5

	fields := fieldErrors(t, form.Validate())
	if !hasFieldError(fields, "questions.0.phase") {
		t.Fatalf("expected phase range error, got %v", fields)
	}
}

func TestModelRoundTrip(t *testing.T) {
	form := validForm()
	if err := form.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	teacherID := uuid.New()
	quiz := form.ToModel(teacherID)

	if quiz.Status != models.QuizStatusDraft {
		t.Fatalf("expected draft status, got %s", quiz.Status)
	}
	if quiz.TeacherID != teacherID {
		t.Fatalf("expected teacher id stamped")
	}
	if len(quiz.ExamPhases) != 2 || quiz.ExamPhases[0].Position != 1 || quiz.ExamPhases[1].Position != 2 {
		t.Fatalf("expected positions reassigned from order: %+v", quiz.ExamPhases)
	}
	if quiz.Questions[1].CorrectAnswer != "false" {
		t.Fatalf("trueFalse answer should persist as text, got %q", quiz.Questions[1].CorrectAnswer)
	}

	// Fetch-for-edit and re-submit unmodified: the rebuilt form must validate
	// and convert back to an equivalent record.
	reloaded := QuizFormFromModel(quiz)
	if reloaded.Questions[1].CorrectAnswer != false {
		t.Fatalf("trueFalse answer should load back as a boolean, got %v", reloaded.Questions[1].CorrectAnswer)
	}
	if err := reloaded.Validate(); err != nil {
		t.Fatalf("round-tripped form failed validation: %v", err)
	}

	again := reloaded.ToModel(teacherID)
	if again.Name != quiz.Name || again.Description != quiz.Description {
		t.Fatalf("quiz details drifted in round trip")
	}
	if len(again.Questions) != len(quiz.Questions) {
		t.Fatalf("question count drifted in round trip")
	}
	for i := range again.Questions {
		if again.Questions[i].CorrectAnswer != quiz.Questions[i].CorrectAnswer {
			t.Fatalf("question %d answer drifted: %q vs %q", i, again.Questions[i].CorrectAnswer, quiz.Questions[i].CorrectAnswer)
		}
		if again.Questions[i].Type != quiz.Questions[i].Type {
			t.Fatalf("question %d type drifted", i)
		}
	}
	if len(again.Rooms) != len(quiz.Rooms) || again.Rooms[0].Passcode != quiz.Rooms[0].Passcode {
		t.Fatalf("rooms drifted in round trip")
	}
}

func TestValidateAppliesQuestionDefaults(t *testing.T) {
	form := validForm()
	form.Questions[0].TimeLimit = 0
	form.ExamPhases[0].TimeLimit = 0

	if err := form.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if form.Questions[0].TimeLimit != 30 {
		t.Fatalf("expected question time limit default 30, got %d", form.Questions[0].TimeLimit)
	}
	if form.ExamPhases[0].TimeLimit != 30 {
		t.Fatalf("expected phase time limit default 30, got %d", form.ExamPhases[0].TimeLimit)
	}
}
