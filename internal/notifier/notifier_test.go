package notifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclaw/coopmatch/internal/filter"
	"github.com/oclaw/coopmatch/internal/models"
)

func TestNewWithEmptyTokenReturnsNilNotifier(t *testing.T) {
	n, err := New("", 0)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNilNotifierNotifyMatchIsNoOp(t *testing.T) {
	var n *Notifier
	err := n.NotifyMatch(models.Job{}, models.MatchResult{}, filter.DecisionAutosaveFolder)
	assert.NoError(t, err)
}

func TestNilNotifierNotifyErrorIsNoOp(t *testing.T) {
	var n *Notifier
	err := n.NotifyError("pipeline", errors.New("boom"))
	assert.NoError(t, err)
}
