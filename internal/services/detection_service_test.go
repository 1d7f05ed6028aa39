package services_test

import (
	"errors"
	"testing"
	"time"

	"farmconnect/internal/models"
	"farmconnect/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leafPhoto = models.UploadedFile{Name: "leaf.jpg", Size: 20480, ContentType: "image/jpeg"}

func TestDetectionService_Completes(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: 60 * time.Millisecond, Tick: 5 * time.Millisecond})
	defer service.Shutdown()

	started, err := service.Start(leafPhoto)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisRunning, started.Status)
	assert.Zero(t, started.Progress)
	assert.Nil(t, started.Result)

	require.Eventually(t, func() bool {
		a, err := service.Get(started.ID)
		return err == nil && a.Status == services.AnalysisCompleted
	}, 2*time.Second, 5*time.Millisecond)

	done, err := service.Get(started.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.Result)
	assert.Equal(t, "Late Blight", done.Result.Disease)
	assert.Equal(t, 92, done.Result.Confidence)
	assert.Equal(t, "warning", done.Result.Tone)
	assert.Equal(t, leafPhoto, done.File)

	// Cancelling a finished analysis leaves its result.
	after, err := service.Cancel(started.ID)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisCompleted, after.Status)
	assert.NotNil(t, after.Result)
}

func TestDetectionService_ProgressIsCapped(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: time.Hour, Tick: time.Millisecond})
	defer service.Shutdown()

	started, err := service.Start(leafPhoto)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		a, err := service.Get(started.ID)
		return err == nil && a.Progress == 90
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	a, err := service.Get(started.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, a.Progress)
	assert.Equal(t, services.AnalysisRunning, a.Status)
}

func TestDetectionService_Cancel(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: 50 * time.Millisecond, Tick: 5 * time.Millisecond})
	defer service.Shutdown()

	started, err := service.Start(leafPhoto)
	require.NoError(t, err)

	cancelled, err := service.Cancel(started.ID)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisCancelled, cancelled.Status)
	assert.Zero(t, cancelled.Progress)

	// Nothing fires once cancelled.
	time.Sleep(100 * time.Millisecond)
	a, err := service.Get(started.ID)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisCancelled, a.Status)
	assert.Nil(t, a.Result)

	_, err = service.Cancel("missing")
	assert.ErrorIs(t, err, services.ErrAnalysisNotFound)
}

func TestDetectionService_Rejected(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{})
	defer service.Shutdown()

	_, err := service.Start(models.UploadedFile{Name: "notes.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, services.ErrUnsupportedFile)

	_, err = service.Get("missing")
	assert.ErrorIs(t, err, services.ErrAnalysisNotFound)
}

func TestDetectionService_Shutdown(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: time.Hour, Tick: time.Hour})

	started, err := service.Start(leafPhoto)
	require.NoError(t, err)

	service.Shutdown()

	a, err := service.Get(started.ID)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisCancelled, a.Status)

	_, err = service.Start(leafPhoto)
	assert.Error(t, err)
}

func TestDetectionService_SweepsSettledAnalyses(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: time.Hour, Tick: time.Hour, Retention: time.Minute})
	defer service.Shutdown()

	running, err := service.Start(leafPhoto)
	require.NoError(t, err)
	cancelled, err := service.Start(leafPhoto)
	require.NoError(t, err)
	_, err = service.Cancel(cancelled.ID)
	require.NoError(t, err)

	// Nothing has settled long enough yet.
	assert.Zero(t, service.Sweep(time.Now()))

	assert.Equal(t, 1, service.Sweep(time.Now().Add(2*time.Minute)))
	_, err = service.Get(cancelled.ID)
	assert.ErrorIs(t, err, services.ErrAnalysisNotFound)

	a, err := service.Get(running.ID)
	require.NoError(t, err)
	assert.Equal(t, services.AnalysisRunning, a.Status)
}

func TestDetectionService_SweepRunsInBackground(t *testing.T) {
	service := services.NewDetectionService(services.DetectionConfig{Duration: time.Millisecond, Tick: time.Millisecond, Retention: 20 * time.Millisecond})
	defer service.Shutdown()

	started, err := service.Start(leafPhoto)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := service.Get(started.ID)
		return errors.Is(err, services.ErrAnalysisNotFound)
	}, 2*time.Second, 5*time.Millisecond)
}
