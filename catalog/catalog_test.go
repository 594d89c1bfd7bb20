package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectsForKnownClassKeepsMapOrder(t *testing.T) {
	subjects := SubjectsForClass("5")
	require.Len(t, subjects, 6)
	assert.Equal(t, "english", subjects[0].ID)
	assert.Equal(t, "science_computer", subjects[5].ID)
}

func TestSubjectsForUnknownClassReturnsWholeLibrary(t *testing.T) {
	subjects := SubjectsForClass("13")
	assert.Len(t, subjects, len(subjectLibrary))
}

func TestSubjectDefinition(t *testing.T) {
	subject, ok := SubjectDefinition("math")
	require.True(t, ok)
	assert.Equal(t, "Mathematics", subject.Title)

	_, ok = SubjectDefinition("astrology")
	assert.False(t, ok)
}
