package capture

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/naniedobe1/PoleBrothers/classifier"
	"github.com/naniedobe1/PoleBrothers/errs"
	"github.com/naniedobe1/PoleBrothers/geo"
	"github.com/naniedobe1/PoleBrothers/location"
	"github.com/naniedobe1/PoleBrothers/models"
	"github.com/naniedobe1/PoleBrothers/repository"
	"github.com/naniedobe1/PoleBrothers/storage"
	"github.com/naniedobe1/PoleBrothers/uploader"
)

const workerURL = "https://worker.example.com/"

type harness struct {
	orch   *Orchestrator
	repo   *repository.Store
	states []State
}

func setupHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Pole{}, &models.UserProfile{}))
	repo := repository.NewStore(db, "test-device")

	up := &uploader.Client{WorkerURL: workerURL, HTTP: &http.Client{}}
	httpmock.ActivateNonDefault(up.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)

	h := &harness{repo: repo}
	h.orch = &Orchestrator{
		Store:      storage.NewPhotoStore(filepath.Join(t.TempDir(), "photos")),
		Location:   location.Static{Point: geo.Point{Latitude: 40.0, Longitude: -74.0}},
		Uploader:   up,
		Repo:       repo,
		Classifier: classifier.Fixed{Status: models.StatusNormal},
		OnState:    func(s State) { h.states = append(h.states, s) },
	}
	return h
}

func capturedPhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camera_tmp.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o644))
	return path
}

func mockHappyWorker() {
	httpmock.RegisterResponder(http.MethodPost, workerURL,
		httpmock.NewStringResponder(200, `{
			"uploadUrl": "https://storage.example.com/poles/1-x.jpg?sig=a",
			"publicUrl": "https://cdn.example.com/poles/1-x.jpg",
			"filename": "poles/1-x.jpg"
		}`))
	httpmock.RegisterResponder(http.MethodPut,
		"https://storage.example.com/poles/1-x.jpg",
		httpmock.NewStringResponder(200, ""))
}

func TestRunHappyPath(t *testing.T) {
	h := setupHarness(t)
	mockHappyWorker()

	pole, err := h.orch.Run(context.Background(), capturedPhoto(t))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/poles/1-x.jpg", pole.ImageURI)
	assert.Equal(t, 40.0, pole.Latitude)
	assert.Equal(t, -74.0, pole.Longitude)
	assert.Equal(t, models.StatusNormal, pole.Status)
	assert.True(t, pole.NormalPole)

	assert.Equal(t, []State{
		StateCapturing,
		StateLocationResolving,
		StateSaving,
		StateRequestingUploadURL,
		StateUploading,
		StateRecordingMetadata,
		StateSuccess,
	}, h.states)

	// The record made it to the repository.
	poles, err := h.repo.ListPoles(context.Background(), repository.ListQuery{})
	require.NoError(t, err)
	require.Len(t, poles, 1)
}

type failingProvider struct{}

func (failingProvider) Current(context.Context) (location.Fix, error) {
	return location.Fix{}, errors.New("permission denied")
}

func TestRunWithoutLocationUsesZeroSentinel(t *testing.T) {
	h := setupHarness(t)
	h.orch.Location = failingProvider{}
	mockHappyWorker()

	pole, err := h.orch.Run(context.Background(), capturedPhoto(t))
	require.NoError(t, err)

	// 0/0 means "fix unavailable" here, not a coordinate in the ocean.
	assert.Equal(t, 0.0, pole.Latitude)
	assert.Equal(t, 0.0, pole.Longitude)
}

func TestRunFailsAtSavingForMissingCapture(t *testing.T) {
	h := setupHarness(t)

	_, err := h.orch.Run(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	require.Error(t, err)

	var stageErr *errs.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, string(StateSaving), stageErr.Stage)
	assert.Equal(t, StateFailed, h.states[len(h.states)-1])
}

func TestRunFailsAtRequestingUploadURL(t *testing.T) {
	h := setupHarness(t)
	httpmock.RegisterResponder(http.MethodPost, workerURL,
		httpmock.NewStringResponder(500, `{"error":"signing broke"}`))

	_, err := h.orch.Run(context.Background(), capturedPhoto(t))
	require.Error(t, err)

	var stageErr *errs.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, string(StateRequestingUploadURL), stageErr.Stage)
}

func TestRunFailsAtUploading(t *testing.T) {
	h := setupHarness(t)
	httpmock.RegisterResponder(http.MethodPost, workerURL,
		httpmock.NewStringResponder(200, `{
			"uploadUrl": "https://storage.example.com/poles/1-x.jpg?sig=a",
			"publicUrl": "https://cdn.example.com/poles/1-x.jpg",
			"filename": "poles/1-x.jpg"
		}`))
	httpmock.RegisterResponder(http.MethodPut,
		"https://storage.example.com/poles/1-x.jpg",
		httpmock.NewStringResponder(403, "SignatureDoesNotMatch"))

	_, err := h.orch.Run(context.Background(), capturedPhoto(t))
	require.Error(t, err)

	var stageErr *errs.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, string(StateUploading), stageErr.Stage)

	// No metadata row for a failed upload.
	poles, listErr := h.repo.ListPoles(context.Background(), repository.ListQuery{})
	require.NoError(t, listErr)
	assert.Empty(t, poles)
}
