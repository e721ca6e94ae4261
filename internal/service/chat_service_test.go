package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceLifecycle(t *testing.T) {
	svc := NewChatService(nil)

	session := svc.CreateSession()
	require.NotEmpty(t, session.ID())
	assert.Equal(t, 1, svc.Count())

	got, ok := svc.Session(session.ID())
	require.True(t, ok)
	assert.Same(t, session, got)

	assert.True(t, svc.CloseSession(session.ID()))
	assert.Equal(t, 0, svc.Count())

	_, ok = svc.Session(session.ID())
	assert.False(t, ok)
	assert.False(t, svc.CloseSession(session.ID()))
}

func TestChatServiceSessionsAreIndependent(t *testing.T) {
	svc := NewChatService(nil)

	a := svc.CreateSession()
	b := svc.CreateSession()
	assert.NotEqual(t, a.ID(), b.ID())

	a.SubmitText("2 hours")
	assert.Len(t, a.Turns(), 3)
	assert.Len(t, b.Turns(), 1)
}

func TestChatServiceCloseAll(t *testing.T) {
	svc := NewChatService(nil)
	svc.CreateSession()
	svc.CreateSession()

	svc.CloseAll()
	assert.Equal(t, 0, svc.Count())
}
