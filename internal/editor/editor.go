package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"incubator/internal/forms"
	"incubator/internal/models"
	"incubator/internal/observability"
)

// DefaultDelay is the pause before a save is handed to the Saver.
const DefaultDelay = 600 * time.Millisecond

// ErrCannotSubmit is returned when the form is missing required text.
var ErrCannotSubmit = errors.New("profile form is incomplete")

// SaveFailed is the only failure a save reports. Reason is shown to the user
// as-is and the form is left untouched for another attempt.
type SaveFailed struct {
	Reason string
}

func (e *SaveFailed) Error() string {
	return "save failed: " + e.Reason
}

// SaveState is the phase of the most recent save for a user.
type SaveState string

const (
	StateIdle   SaveState = "idle"
	StateSaving SaveState = "saving"
	StateSaved  SaveState = "saved"
	StateFailed SaveState = "failed"
)

// Status describes the last save submitted for one email.
type Status struct {
	State   SaveState       `json:"state"`
	Error   string          `json:"error,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// Result is delivered to the submit callback once a save settles.
type Result struct {
	Profile models.Profile
	Err     *SaveFailed
}

// Editor runs profile saves in the background.
type Editor struct {
	saver Saver
	delay time.Duration

	mu       sync.Mutex
	statuses map[string]Status
	inflight sync.WaitGroup
}

// New returns an Editor that waits delay before saving through saver. A
// non-positive delay uses DefaultDelay.
func New(saver Saver, delay time.Duration) *Editor {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Editor{
		saver:    saver,
		delay:    delay,
		statuses: make(map[string]Status),
	}
}

// Status returns the last save status for email.
func (e *Editor) Status(email string) Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.statuses[email]; ok {
		return st
	}
	return Status{State: StateIdle}
}

// Submit validates the form and starts saving it in the background,
// returning immediately. done, if non-nil, is called from the save goroutine.
// Overlapping submissions are not serialized and may settle in any order.
func (e *Editor) Submit(ctx context.Context, user models.User, f forms.ProfileForm, done func(Result)) (models.Profile, error) {
	if !CanSubmit(user.Role, f) {
		return models.Profile{}, ErrCannotSubmit
	}
	payload := Payload(user, f)

	e.setStatus(user.Email, Status{State: StateSaving})
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		res := e.save(ctx, payload)
		if done != nil {
			done(res)
		}
	}()
	return payload, nil
}

// Wait blocks until every in-flight save has settled.
func (e *Editor) Wait() {
	e.inflight.Wait()
}

func (e *Editor) save(ctx context.Context, p models.Profile) Result {
	fields := map[string]interface{}{"email": p.Email}
	observability.LogAsyncOperationStart(ctx, "profile_save", fields)

	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	var failed *SaveFailed
	saved := p
	select {
	case <-ctx.Done():
		failed = &SaveFailed{Reason: "canceled"}
	case <-timer.C:
		stored, err := e.saver.Save(ctx, p)
		if err != nil {
			failed = &SaveFailed{Reason: err.Error()}
		} else {
			saved = stored
		}
	}

	if failed != nil {
		observability.EditorSaves.WithLabelValues("failed").Inc()
		observability.LogAsyncOperationError(ctx, "profile_save", failed, fields)
		e.setStatus(p.Email, Status{State: StateFailed, Error: failed.Reason})
		return Result{Profile: p, Err: failed}
	}

	observability.EditorSaves.WithLabelValues("saved").Inc()
	observability.LogAsyncOperationEnd(ctx, "profile_save", fields)
	e.setStatus(p.Email, Status{State: StateSaved, Profile: &saved})
	return Result{Profile: saved}
}

func (e *Editor) setStatus(email string, st Status) {
	e.mu.Lock()
	e.statuses[email] = st
	e.mu.Unlock()
}
