package qa

import (
	"bytes"
	"encoding/json"
)

// ConceptNode is the smallest answerable unit inside an offline pack.
type ConceptNode struct {
	ID                 string          `json:"id,omitempty"`
	Topic              string          `json:"topic,omitempty"`
	Keywords           []string        `json:"keywords,omitempty"`
	QuestionVariations []string        `json:"question_variations,omitempty"`
	Payload            *ConceptPayload `json:"content_payload,omitempty"`
}

type ConceptPayload struct {
	ExplanationText string   `json:"explanation_text,omitempty"`
	KeyPoints       []string `json:"key_points,omitempty"`
}

type ChapterNode struct {
	ChapterID    string        `json:"chapter_id,omitempty"`
	ChapterTitle string        `json:"chapter_title,omitempty"`
	Concepts     []ConceptNode `json:"concepts,omitempty"`
}

// Pack is the root of an offline knowledge document. On disk a pack is either
// an object with a "chapters" field or a bare array of chapters; UnmarshalJSON
// resolves both shapes into the Chapters slice so nothing downstream cares.
type Pack struct {
	Meta     map[string]any `json:"meta,omitempty"`
	Chapters []ChapterNode  `json:"chapters,omitempty"`
}

func (p *Pack) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var chapters []ChapterNode
		if err := json.Unmarshal(trimmed, &chapters); err != nil {
			return err
		}
		p.Chapters = chapters
		return nil
	}

	type packAlias Pack
	var alias packAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = Pack(alias)
	return nil
}

func ParsePack(data []byte) (*Pack, error) {
	pack := &Pack{}
	if err := json.Unmarshal(data, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// Flatten collapses the chapter hierarchy into one concept list, keeping
// chapter order and then concept order within each chapter. A pack without
// chapters flattens to an empty list, not an error.
func (p *Pack) Flatten() []ConceptNode {
	if p == nil {
		return nil
	}
	concepts := make([]ConceptNode, 0)
	for _, chapter := range p.Chapters {
		concepts = append(concepts, chapter.Concepts...)
	}
	return concepts
}
