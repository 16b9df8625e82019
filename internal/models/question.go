package models

import "strings"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// TrueFalseOptions are the only legal options for a true/false
// question.
var TrueFalseOptions = []string{"True", "False"}

// ParseQuestionType normalizes the loose type labels the quiz
// generator emits ("Multiple Choice", "true/false", ...) into one of
// the three known types. Unknown labels return ok=false.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiple_choice", "multiple choice", "multiple-choice", "mc":
		return MultipleChoice, true
	case "true_false", "true/false", "true-false", "tf":
		return TrueFalse, true
	case "short_answer", "short answer", "short-answer", "sa":
		return ShortAnswer, true
	}
	return "", false
}

// HasOptions reports whether this question type carries an option
// list.
func (t QuestionType) HasOptions() bool {
	return t == MultipleChoice || t == TrueFalse
}

type Question struct {
	ID             string       `bson:"_id,omitempty" json:"id"`
	QuizID         string       `bson:"quiz_id" json:"quiz_id"`
	Text           string       `bson:"text" json:"text"`
	Type           QuestionType `bson:"type" json:"type"`
	Options        []string     `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswer  string       `bson:"correct_answer" json:"correct_answer"`
	Explanation    string       `bson:"explanation" json:"explanation"`
	AdaptationType string       `bson:"adaptation_type,omitempty" json:"adaptation_type,omitempty"`
	SkillID        string       `bson:"skill_id,omitempty" json:"skill_id,omitempty"`
	Position       int          `bson:"position" json:"position"`
}
