package capture

import (
	"context"
	"errors"
	"log"

	"github.com/naniedobe1/PoleBrothers/classifier"
	"github.com/naniedobe1/PoleBrothers/errs"
	"github.com/naniedobe1/PoleBrothers/geo"
	"github.com/naniedobe1/PoleBrothers/location"
	"github.com/naniedobe1/PoleBrothers/models"
	"github.com/naniedobe1/PoleBrothers/repository"
	"github.com/naniedobe1/PoleBrothers/storage"
	"github.com/naniedobe1/PoleBrothers/uploader"
)

// State names one step of a capture attempt.
type State string

const (
	StateIdle                State = "Idle"
	StateCapturing           State = "Capturing"
	StateLocationResolving   State = "LocationResolving"
	StateSaving              State = "Saving"
	StateRequestingUploadURL State = "RequestingUploadUrl"
	StateUploading           State = "Uploading"
	StateRecordingMetadata   State = "RecordingMetadata"
	StateSuccess             State = "Success"
	StateFailed              State = "Failed"
)

// Orchestrator sequences one capture: local save, location fix, upload via
// presigned URL, metadata insert. Stages run strictly in order because each
// depends on the previous stage's output; nothing is retried automatically.
// A failed attempt is re-run from the top by calling Run again.
//
// Concurrent Run calls on the same device are a caller error to avoid; the
// UI is expected to disable re-entry while an attempt is in flight.
type Orchestrator struct {
	Store      *storage.PhotoStore
	Location   location.Provider
	Uploader   *uploader.Client
	Repo       *repository.Store
	Classifier classifier.Classifier

	// OnState, when set, observes every state transition.
	OnState func(State)
}

func (o *Orchestrator) setState(s State) {
	if o.OnState != nil {
		o.OnState(s)
	}
}

// Run processes one captured photo through the full pipeline and returns
// the recorded pole. On failure the error is an errs.StageError naming the
// state that produced it.
func (o *Orchestrator) Run(ctx context.Context, capturedPath string) (models.Pole, error) {
	o.setState(StateCapturing)

	// A missing fix is tolerated: the record gets the 0/0 sentinel and the
	// capture still goes through.
	o.setState(StateLocationResolving)
	var loc *geo.Point
	locCtx, cancel := context.WithTimeout(ctx, location.AcquireTimeout)
	fix, err := o.Location.Current(locCtx)
	cancel()
	if err != nil {
		log.Printf("Location unavailable, recording without coordinates: %v\n", err)
	} else {
		loc = &fix.Point
	}

	o.setState(StateSaving)
	savedPath, err := o.Store.Save(capturedPath)
	if err != nil {
		return o.fail(StateSaving, err)
	}

	assessment, err := o.Classifier.Classify(savedPath)
	if err != nil {
		return o.fail(StateSaving, err)
	}

	o.setState(StateRequestingUploadURL)
	o.setState(StateUploading)
	filename := uploader.GenerateFilename()
	publicURL, err := o.Uploader.Upload(ctx, savedPath, filename)
	if err != nil {
		// Preparation failures belong to the URL-request step, not the PUT.
		if errors.Is(err, errs.ErrPreparation) {
			return o.fail(StateRequestingUploadURL, err)
		}
		return o.fail(StateUploading, err)
	}

	o.setState(StateRecordingMetadata)
	pole, err := o.Repo.InsertPole(ctx, repository.InsertParams{
		ImageURI:        publicURL,
		Location:        loc,
		Status:          assessment.Status,
		LowerConfidence: assessment.LowerConfidence,
		UpperConfidence: assessment.UpperConfidence,
	})
	if err != nil {
		return o.fail(StateRecordingMetadata, err)
	}

	o.setState(StateSuccess)
	return pole, nil
}

func (o *Orchestrator) fail(state State, err error) (models.Pole, error) {
	o.setState(StateFailed)
	return models.Pole{}, errs.Stage(string(state), err)
}
