package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
)

func TestInitialStatus(t *testing.T) {
	s, err := InitialStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	s, err = InitialStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	_, err = InitialStatus("cancelled")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = InitialStatus("done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, &now, ap.CancelledAt)

	err := Cancel(ap, now)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindInvalidState, kind)
}

func TestConfirm(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)

	assert.Error(t, Confirm(ap, now))
	assert.Error(t, Confirm(&models.Appointment{Status: string(StatusCancelled)}, now))
}
