package domain_test

import (
	"testing"

	"github.com/aretw0/vista/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestState_Snapshot(t *testing.T) {
	s := domain.NewState("s1")
	s.History.Entries = append(s.History.Entries, 1)

	c := s.Snapshot()
	c.History.Entries[0] = 5
	c.Overlay.ShowTextDialog("x")

	assert.Equal(t, domain.SceneID(1), s.History.Entries[0])
	assert.Equal(t, domain.OverlayNone, s.Overlay.Kind)
	assert.Equal(t, domain.PhaseIdle, c.Phase)
}

func TestState_Viewing(t *testing.T) {
	s := domain.NewState("s1")
	assert.False(t, s.Viewing())

	s.Phase = domain.PhaseViewing
	assert.True(t, s.Viewing())
}
