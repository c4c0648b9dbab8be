package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "primeira pergunta")
	s.Append(RoleAssistant, "primeira resposta")
	s.Append(RoleUser, "segunda pergunta")

	turns := s.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "primeira pergunta", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, RoleUser, turns[2].Role)
}

func TestTurnsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "oi")

	turns := s.Turns()
	turns[0].Content = "mutated"

	assert.Equal(t, "oi", s.Turns()[0].Content)
}

func TestExport(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "Qual o tema?")
	s.Append(RoleAssistant, "O tema é X.")

	assert.Equal(t, "User: Qual o tema?\n\nAssistant: O tema é X.", s.Export())
}

func TestExportEmpty(t *testing.T) {
	assert.Equal(t, "", NewStore().Export())
}

func TestExportDoesNotMutate(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "Qual o tema?")

	_ = s.Export()
	_ = s.Export()

	assert.Len(t, s.Turns(), 1)
}

func TestRoleDisplay(t *testing.T) {
	assert.Equal(t, "User", RoleUser.Display())
	assert.Equal(t, "Assistant", RoleAssistant.Display())
}
