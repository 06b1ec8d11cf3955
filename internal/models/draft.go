package models

import "strings"

// OptionDraft is an answer option as edited, with correctness held apart in
// the draft's correct-index fields.
type OptionDraft struct {
	Text string `json:"text"`
}

// QuestionDraft is the editable authoring shape. It is always derived from,
// and reducible to, the stored Question: choice correctness is an explicit
// index (single) or index set (multiple) instead of per-option flags.
type QuestionDraft struct {
	ID             string        `json:"id,omitempty"` // client-side identity, not persisted
	Prompt         string        `json:"question"`
	Kind           QuestionKind  `json:"type"`
	Options        []OptionDraft `json:"options,omitempty"`
	CorrectIndex   int           `json:"correctIndex"`
	CorrectIndexes []int         `json:"correctIndexes,omitempty"`
	MatchPairs     []PairValue   `json:"matchPairs,omitempty"`
	TextAnswer     string        `json:"textAnswer,omitempty"`
}

// IsComplete reports whether the draft satisfies its kind's authoring
// completeness rules. A quiz save is rejected before any persistence call if
// any question is incomplete.
func (d *QuestionDraft) IsComplete() bool {
	if strings.TrimSpace(d.Prompt) == "" {
		return false
	}

	switch d.Kind {
	case KindSingle, KindMultiple:
		if len(d.Options) < 2 {
			return false
		}
		for _, opt := range d.Options {
			if strings.TrimSpace(opt.Text) == "" {
				return false
			}
		}
		if d.Kind == KindMultiple {
			return len(d.CorrectIndexes) > 0
		}
		return d.CorrectIndex >= 0 && d.CorrectIndex < len(d.Options)

	case KindMatch:
		if len(d.MatchPairs) == 0 {
			return false
		}
		for _, p := range d.MatchPairs {
			if strings.TrimSpace(p.Left) == "" || strings.TrimSpace(p.Right) == "" {
				return false
			}
		}
		return true

	case KindText:
		return strings.TrimSpace(d.TextAnswer) != ""
	}

	return false
}

// RemoveOption deletes the option at index i and re-indexes the correct
// selection: multi-select indexes above i shift down by one and i itself is
// dropped; if i was the single-select's correct index, the correct index
// resets to 0. Choice questions keep a floor of two options.
func (d *QuestionDraft) RemoveOption(i int) bool {
	if d.Kind != KindSingle && d.Kind != KindMultiple {
		return false
	}
	if i < 0 || i >= len(d.Options) || len(d.Options) <= 2 {
		return false
	}

	d.Options = append(d.Options[:i], d.Options[i+1:]...)

	if d.Kind == KindMultiple {
		kept := make([]int, 0, len(d.CorrectIndexes))
		for _, idx := range d.CorrectIndexes {
			switch {
			case idx == i:
				// dropped with its option
			case idx > i:
				kept = append(kept, idx-1)
			default:
				kept = append(kept, idx)
			}
		}
		d.CorrectIndexes = kept
		return true
	}

	switch {
	case d.CorrectIndex == i:
		d.CorrectIndex = 0
	case d.CorrectIndex > i:
		d.CorrectIndex--
	}
	return true
}
