package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackObjectShape(t *testing.T) {
	data := []byte(`{
		"meta": {"grade": "8th"},
		"chapters": [
			{"chapter_id": "ch1", "chapter_title": "Motion", "concepts": [
				{"id": "c1", "topic": "Inertia"},
				{"id": "c2", "topic": "Acceleration"}
			]},
			{"chapter_id": "ch2", "concepts": [
				{"id": "c3", "topic": "Gravity"}
			]}
		]
	}`)

	pack, err := ParsePack(data)
	require.NoError(t, err)
	require.Len(t, pack.Chapters, 2)
	assert.Equal(t, "Motion", pack.Chapters[0].ChapterTitle)
}

func TestParsePackBareArrayShape(t *testing.T) {
	data := []byte(`[
		{"chapter_id": "ch1", "concepts": [{"id": "c1", "topic": "Inertia"}]},
		{"chapter_id": "ch2", "concepts": [{"id": "c2", "topic": "Gravity"}]}
	]`)

	pack, err := ParsePack(data)
	require.NoError(t, err)
	require.Len(t, pack.Chapters, 2)
	assert.Equal(t, "ch2", pack.Chapters[1].ChapterID)
}

func TestFlattenPreservesChapterThenConceptOrder(t *testing.T) {
	pack := &Pack{Chapters: []ChapterNode{
		{Concepts: []ConceptNode{{ID: "c1"}, {ID: "c2"}}},
		{Concepts: []ConceptNode{{ID: "c3"}}},
	}}

	concepts := pack.Flatten()
	require.Len(t, concepts, 3)
	assert.Equal(t, "c1", concepts[0].ID)
	assert.Equal(t, "c2", concepts[1].ID)
	assert.Equal(t, "c3", concepts[2].ID)
}

func TestFlattenMissingChapters(t *testing.T) {
	pack, err := ParsePack([]byte(`{"meta": {"note": "no chapters field"}}`))
	require.NoError(t, err)
	assert.Empty(t, pack.Flatten())
}

func TestParsePackMalformed(t *testing.T) {
	_, err := ParsePack([]byte(`{"chapters": "nope"`))
	assert.Error(t, err)
}
