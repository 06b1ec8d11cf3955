package models

import "encoding/json"

// PairValue is a left/right pair as submitted or disclosed, without storage
// identity.
type PairValue struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// SubmittedAnswer is one user answer, mirroring the question union. Only the
// fields of its Kind are meaningful; the rest stay zero.
type SubmittedAnswer struct {
	Kind            QuestionKind `json:"-"`
	SelectedIndex   *int         `json:"selectedIndex,omitempty"`
	SelectedIndexes []int        `json:"selectedIndexes,omitempty"`
	Text            string       `json:"text,omitempty"`
	Pairs           []PairValue  `json:"pairs,omitempty"`
}

type submittedAnswerJSON struct {
	Type            string      `json:"type"`
	SelectedIndex   *int        `json:"selectedIndex,omitempty"`
	SelectedIndexes []int       `json:"selectedIndexes,omitempty"`
	Text            string      `json:"text,omitempty"`
	Pairs           []PairValue `json:"pairs,omitempty"`
}

// UnmarshalJSON accepts the wire shape with a lower-case "type" tag. An
// unknown tag leaves Kind invalid; grading treats that as a wrong answer
// rather than an error.
func (a *SubmittedAnswer) UnmarshalJSON(data []byte) error {
	var raw submittedAnswerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, _ := ParseKind(raw.Type)
	*a = SubmittedAnswer{
		Kind:            kind,
		SelectedIndex:   raw.SelectedIndex,
		SelectedIndexes: raw.SelectedIndexes,
		Text:            raw.Text,
		Pairs:           raw.Pairs,
	}
	return nil
}

func (a SubmittedAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(submittedAnswerJSON{
		Type:            a.Kind.WireKind(),
		SelectedIndex:   a.SelectedIndex,
		SelectedIndexes: a.SelectedIndexes,
		Text:            a.Text,
		Pairs:           a.Pairs,
	})
}
