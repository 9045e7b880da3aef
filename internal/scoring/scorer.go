package scoring

import "fmt"

// Result is the tally produced by checking an activity
type Result struct {
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
	Feedback Feedback `json:"feedback"`
}

// Check scores every prompt in the activity against its stored answer key,
// marks each prompt surface correct/incorrect and writes the summary
// feedback. Check never fails; unknown activity types score zero of zero.
func Check(a *Activity) Result {
	var result Result

	switch a.Type {
	case Unscramble, GapFill:
		result = checkText(a)
	case Matching, McGrammar, McGrammarRadio:
		result = checkChoice(a)
	case TokenDrop, TableCompletion:
		result = checkPlacement(a)
	case Categorization:
		result = checkCategorization(a)
	case MatchingConnect:
		result = checkMatchingConnect(a)
	case StressMark:
		result = checkStress(a)
	}

	a.Feedback = result.Feedback
	return result
}

// Reset returns every response surface and visual marker to the state of a
// freshly created activity, identically for every type.
func Reset(a *Activity) {
	for i := range a.Prompts {
		a.Prompts[i].Response = ""
		a.Prompts[i].Mark = MarkNone
	}
	for i := range a.Choices {
		a.Choices[i].Selected = ""
		a.Choices[i].Mark = MarkNone
	}
	for i := range a.Tokens {
		a.Tokens[i].ZoneID = ""
	}
	for i := range a.Zones {
		a.Zones[i].TokenID = ""
		a.Zones[i].Mark = MarkNone
	}
	for i := range a.Questions {
		a.Questions[i].Selected = ""
		a.Questions[i].Mark = MarkNone
	}
	for i := range a.Answers {
		a.Answers[i].Selected = ""
		a.Answers[i].Mark = MarkNone
	}
	for i := range a.Sentences {
		for j := range a.Sentences[i].Words {
			a.Sentences[i].Words[j].Marked = false
			a.Sentences[i].Words[j].Mark = MarkNone
		}
	}
	a.Feedback = Feedback{}
}

func checkText(a *Activity) Result {
	correct := 0
	for i := range a.Prompts {
		prompt := &a.Prompts[i]
		if textPromptCorrect(prompt) {
			prompt.Mark = MarkCorrect
			correct++
		} else {
			prompt.Mark = MarkIncorrect
		}
	}
	return tallied(correct, len(a.Prompts))
}

func textPromptCorrect(prompt *TextPrompt) bool {
	answer := Normalize(prompt.Answer)
	if answer == "" {
		return false
	}
	response := Normalize(prompt.Response)
	if response == answer {
		return true
	}
	for _, alternate := range prompt.Alternates {
		if normalized := Normalize(alternate); normalized != "" && response == normalized {
			return true
		}
	}
	return false
}

func checkChoice(a *Activity) Result {
	correct := 0
	for i := range a.Choices {
		choice := &a.Choices[i]
		if choice.Selected != "" && choice.Selected == choice.Correct {
			choice.Mark = MarkCorrect
			correct++
		} else {
			choice.Mark = MarkIncorrect
		}
	}
	return tallied(correct, len(a.Choices))
}

func checkPlacement(a *Activity) Result {
	correct := 0
	for i := range a.Zones {
		zone := &a.Zones[i]
		// An empty zone counts against the tally but carries no marker.
		if zone.TokenID == "" {
			zone.Mark = MarkNone
			continue
		}
		token := a.token(zone.TokenID)
		if token != nil && token.Value == zone.Answer {
			zone.Mark = MarkCorrect
			correct++
		} else {
			zone.Mark = MarkIncorrect
		}
	}

	total := len(a.Zones)
	feedback := Feedback{
		Text:   fmt.Sprintf("You have %d of %d correct. Try again!", correct, total),
		Status: "error",
	}
	if correct == total {
		feedback = Feedback{Text: "Great job! Every space is correct.", Status: "success"}
	}
	return Result{Correct: correct, Total: total, Feedback: feedback}
}

func checkCategorization(a *Activity) Result {
	correct := 0
	for i := range a.Tokens {
		token := &a.Tokens[i]
		if token.ZoneID == "" {
			continue
		}
		zone := a.zone(token.ZoneID)
		if zone != nil && token.Category == zone.Category {
			correct++
		}
	}

	// Column markers: a zone with no tokens is always incorrect.
	for i := range a.Zones {
		zone := &a.Zones[i]
		placed := 0
		allMatch := true
		for j := range a.Tokens {
			if a.Tokens[j].ZoneID != zone.ID {
				continue
			}
			placed++
			if a.Tokens[j].Category != zone.Category {
				allMatch = false
			}
		}
		if placed > 0 && allMatch {
			zone.Mark = MarkCorrect
		} else {
			zone.Mark = MarkIncorrect
		}
	}

	total := len(a.Tokens)
	status := "error"
	if correct == total {
		status = "success"
	}
	return Result{
		Correct: correct,
		Total:   total,
		Feedback: Feedback{
			Text:   fmt.Sprintf("You correctly placed %d out of %d items.", correct, total),
			Status: status,
		},
	}
}

func checkMatchingConnect(a *Activity) Result {
	correct := 0
	for i := range a.Questions {
		question := &a.Questions[i]
		isCorrect := question.Selected != "" && question.Selected == question.Expected

		mark := MarkIncorrect
		if question.Selected == "" {
			mark = MarkNone
		} else if isCorrect {
			mark = MarkCorrect
		}
		question.Mark = mark
		if answer := a.answerByValue(question.Selected); answer != nil {
			answer.Mark = mark
		}

		if isCorrect {
			correct++
		}
	}

	total := len(a.Questions)
	feedback := Feedback{
		Text:   fmt.Sprintf("You have %d of %d correct. Adjust and try again.", correct, total),
		Status: "error",
	}
	if correct == total {
		feedback = Feedback{Text: "Excellent! Every match is correct.", Status: "success"}
	}
	return Result{Correct: correct, Total: total, Feedback: feedback}
}

func checkStress(a *Activity) Result {
	correct := 0
	for i := range a.Sentences {
		sentence := &a.Sentences[i]
		expected := Normalize(sentence.Correct)
		for j := range sentence.Words {
			word := &sentence.Words[j]
			word.Mark = MarkNone
			if !word.Marked {
				continue
			}
			marked := Normalize(word.Text)
			if marked != "" && marked == expected {
				word.Mark = MarkCorrect
				correct++
			} else {
				word.Mark = MarkIncorrect
			}
		}
	}
	return tallied(correct, len(a.Sentences))
}

func tallied(correct, total int) Result {
	status := "error"
	if correct == total {
		status = "success"
	}
	return Result{
		Correct: correct,
		Total:   total,
		Feedback: Feedback{
			Text:   fmt.Sprintf("You have %d of %d correct.", correct, total),
			Status: status,
		},
	}
}
