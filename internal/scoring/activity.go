package scoring

// ActivityType identifies one of the supported interactive activity kinds
type ActivityType string

const (
	Unscramble      ActivityType = "unscramble"
	GapFill         ActivityType = "gap-fill"
	Matching        ActivityType = "matching"
	MatchingConnect ActivityType = "matching-connect"
	McGrammar       ActivityType = "mc-grammar"
	McGrammarRadio  ActivityType = "mc-grammar-radio"
	Categorization  ActivityType = "categorization"
	StressMark      ActivityType = "stress-mark"
	TokenDrop       ActivityType = "token-drop"
	TableCompletion ActivityType = "table-completion"
)

// Mark is the correctness state shown on a prompt surface after a check
type Mark string

const (
	MarkNone      Mark = ""
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

// TextPrompt is a free-text entry prompt (unscramble, gap-fill). The stored
// answer may carry alternates, any of which is accepted.
type TextPrompt struct {
	ID         string   `json:"id"`
	Answer     string   `json:"answer"`
	Alternates []string `json:"alternates,omitempty"`
	Response   string   `json:"response"`
	Mark       Mark     `json:"mark,omitempty"`
}

// ChoicePrompt is a single-choice selection prompt (matching, mc-grammar,
// mc-grammar-radio). Values are author-assigned tags compared verbatim.
type ChoicePrompt struct {
	ID       string `json:"id"`
	Correct  string `json:"correct"`
	Selected string `json:"selected"`
	Mark     Mark   `json:"mark,omitempty"`
}

// Token is a movable item in placement activities. ZoneID is empty while the
// token sits in the bank.
type Token struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
	ZoneID   string `json:"zoneId"`
}

// Zone is a placement destination. Answer is the expected token value
// (token-drop, table-completion); Category is the expected token category
// (categorization). TokenID tracks the occupant of single-slot zones.
type Zone struct {
	ID          string `json:"id"`
	Answer      string `json:"answer,omitempty"`
	Category    string `json:"category,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	TokenID     string `json:"tokenId"`
	Mark        Mark   `json:"mark,omitempty"`
}

// MatchQuestion is the left side of a bipartite matching-connect activity.
// Selected holds the value of the currently linked answer.
type MatchQuestion struct {
	ID       string `json:"id"`
	Expected string `json:"expected"`
	Selected string `json:"selected"`
	Mark     Mark   `json:"mark,omitempty"`
}

// MatchAnswer is the right side of a matching-connect activity. Selected
// holds the id of the currently linked question.
type MatchAnswer struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Selected string `json:"selected"`
	Mark     Mark   `json:"mark,omitempty"`
}

// StressWord is one clickable word in a stress-mark sentence
type StressWord struct {
	Text   string `json:"text"`
	Marked bool   `json:"marked"`
	Mark   Mark   `json:"mark,omitempty"`
}

// StressSentence holds one sentence with exactly one expected stressed word
type StressSentence struct {
	ID      string       `json:"id"`
	Correct string       `json:"correct"`
	Words   []StressWord `json:"words"`
}

// Feedback is the summary line written after a check. Status is "success"
// when every prompt was correct, "error" otherwise, empty before any check.
type Feedback struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

// Activity is the full learner-visible state of one scorable exercise. Only
// the field set matching Type is populated; the rest stay empty.
type Activity struct {
	Type      ActivityType     `json:"type"`
	Prompts   []TextPrompt     `json:"prompts,omitempty"`
	Choices   []ChoicePrompt   `json:"choices,omitempty"`
	Tokens    []Token          `json:"tokens,omitempty"`
	Zones     []Zone           `json:"zones,omitempty"`
	Questions []MatchQuestion  `json:"questions,omitempty"`
	Answers   []MatchAnswer    `json:"answers,omitempty"`
	Sentences []StressSentence `json:"sentences,omitempty"`
	Feedback  Feedback         `json:"feedback"`
}

func (a *Activity) token(id string) *Token {
	for i := range a.Tokens {
		if a.Tokens[i].ID == id {
			return &a.Tokens[i]
		}
	}
	return nil
}

func (a *Activity) zone(id string) *Zone {
	for i := range a.Zones {
		if a.Zones[i].ID == id {
			return &a.Zones[i]
		}
	}
	return nil
}

func (a *Activity) question(id string) *MatchQuestion {
	for i := range a.Questions {
		if a.Questions[i].ID == id {
			return &a.Questions[i]
		}
	}
	return nil
}

func (a *Activity) answerByValue(value string) *MatchAnswer {
	for i := range a.Answers {
		if a.Answers[i].Value == value {
			return &a.Answers[i]
		}
	}
	return nil
}

// PlaceToken assigns a token to a single-slot zone (token-drop,
// table-completion). A token already occupying the zone returns to the bank;
// a token placed elsewhere leaves its previous zone. Unknown ids are ignored.
func (a *Activity) PlaceToken(tokenID, zoneID string) {
	token := a.token(tokenID)
	zone := a.zone(zoneID)
	if token == nil || zone == nil {
		return
	}

	if zone.TokenID != "" && zone.TokenID != tokenID {
		if previous := a.token(zone.TokenID); previous != nil {
			previous.ZoneID = ""
		}
	}
	if token.ZoneID != "" && token.ZoneID != zoneID {
		if previous := a.zone(token.ZoneID); previous != nil {
			previous.TokenID = ""
			previous.Mark = MarkNone
		}
	}

	zone.TokenID = token.ID
	zone.Mark = MarkNone
	token.ZoneID = zone.ID
}

// ClearZone returns a single-slot zone's token to the bank
func (a *Activity) ClearZone(zoneID string) {
	zone := a.zone(zoneID)
	if zone == nil {
		return
	}
	if token := a.token(zone.TokenID); token != nil {
		token.ZoneID = ""
	}
	zone.TokenID = ""
	zone.Mark = MarkNone
}

// DropToken moves a token into a multi-slot category zone (categorization).
// Tokens simply move between zones; an empty zoneID returns the token to the
// bank.
func (a *Activity) DropToken(tokenID, zoneID string) {
	token := a.token(tokenID)
	if token == nil {
		return
	}
	if zoneID != "" && a.zone(zoneID) == nil {
		return
	}
	token.ZoneID = zoneID
}

// Link pairs a question with the answer carrying value. Either side's
// existing pairing is silently unlinked first, so each question holds at
// most one answer and vice versa.
func (a *Activity) Link(questionID, value string) {
	question := a.question(questionID)
	answer := a.answerByValue(value)
	if question == nil || answer == nil {
		return
	}

	if question.Selected != "" {
		a.Unlink(question.ID)
	}
	if answer.Selected != "" {
		a.Unlink(answer.Selected)
	}

	question.Selected = answer.Value
	question.Mark = MarkNone
	answer.Selected = question.ID
	answer.Mark = MarkNone
}

// Unlink removes a question's pairing on both sides
func (a *Activity) Unlink(questionID string) {
	question := a.question(questionID)
	if question == nil {
		return
	}
	if answer := a.answerByValue(question.Selected); answer != nil {
		answer.Selected = ""
		answer.Mark = MarkNone
	}
	question.Selected = ""
	question.Mark = MarkNone
}

// MarkWord marks one word in a stress-mark sentence, unmarking any
// previously marked word in that sentence.
func (a *Activity) MarkWord(sentenceID string, wordIndex int) {
	for i := range a.Sentences {
		sentence := &a.Sentences[i]
		if sentence.ID != sentenceID {
			continue
		}
		if wordIndex < 0 || wordIndex >= len(sentence.Words) {
			return
		}
		for j := range sentence.Words {
			sentence.Words[j].Marked = j == wordIndex
			sentence.Words[j].Mark = MarkNone
		}
		return
	}
}
