package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"incubator/internal/models"
	"incubator/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Operation names reported to change hooks, logs and metrics.
const (
	OpLogin            = "login"
	OpLogout           = "logout"
	OpCreateProfile    = "create_profile"
	OpCommitProfile    = "commit_profile"
	OpPostResearch     = "post_research"
	OpPostStartup      = "post_startup"
	OpApplyToResearch  = "apply_research"
	OpApplyToIncubator = "apply_incubator"
	OpExpressInterest  = "express_interest"
	OpReplace          = "replace"
)

// ErrNoCurrentUser marks a mutation that was skipped because nobody is logged in.
var ErrNoCurrentUser = errors.New("no current user")

// ChangeHook is notified after a mutation has been applied.
type ChangeHook func(ctx context.Context, op string)

// Options configure a Store. Zero values fall back to sensible defaults.
type Options struct {
	// Now is the wall clock used for ids and timestamps.
	Now func() time.Time
	// Cohort labels incubator applications.
	Cohort string
	// ProfileUpsert decides, per user, whether profile submissions replace the
	// existing profile for the email instead of appending a duplicate.
	ProfileUpsert func(user models.User) bool
	// Initial is the starting state, e.g. seeded demo data.
	Initial State
}

// Store owns the current State and applies operations to it one at a time.
type Store struct {
	mu     sync.RWMutex
	state  State
	lastID int64
	now    func() time.Time
	cohort string
	upsert func(models.User) bool
	hooks  []ChangeHook
	log    *observability.StoreLogger
}

// NewStore builds a Store from opts.
func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cohort := opts.Cohort
	if cohort == "" {
		cohort = models.DefaultCohort
	}
	return &Store{
		state:  opts.Initial,
		lastID: maxID(opts.Initial),
		now:    now,
		cohort: cohort,
		upsert: opts.ProfileUpsert,
		log:    observability.NewStoreLogger("directory"),
	}
}

// OnChange registers a hook called after every applied mutation.
func (s *Store) OnChange(h ChangeHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Cohort returns the label attached to incubator applications.
func (s *Store) Cohort() string {
	return s.cohort
}

// Snapshot returns the current state for read-only use.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns a copy of the logged-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Current == nil {
		return models.User{}, false
	}
	return *s.state.Current, true
}

// Replace swaps in an entirely new state, e.g. after seeding.
func (s *Store) Replace(ctx context.Context, next State) {
	s.apply(ctx, OpReplace, func(State, Stamp) (State, bool, map[string]interface{}) {
		if id := maxID(next); id > s.lastID {
			s.lastID = id
		}
		return next, true, map[string]interface{}{"profiles": len(next.Profiles)}
	})
}

// Login makes a new user with the given email and role current.
func (s *Store) Login(ctx context.Context, email string, role models.Role) models.User {
	var user models.User
	s.apply(ctx, OpLogin, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		var next State
		next, user = Login(st, email, role, stamp)
		return next, true, map[string]interface{}{"user_id": user.ID, "role": string(role)}
	})
	return user
}

// Logout clears the current user.
func (s *Store) Logout(ctx context.Context) {
	s.apply(ctx, OpLogout, func(st State, _ Stamp) (State, bool, map[string]interface{}) {
		return Logout(st), true, nil
	})
}

// CreateProfile stores a profile for the current user. It reports false when
// nobody is logged in. Whether a second submission replaces or duplicates the
// first is decided by the ProfileUpsert option.
func (s *Store) CreateProfile(ctx context.Context, f ProfileFields) (models.Profile, bool) {
	var profile models.Profile
	ok := s.apply(ctx, OpCreateProfile, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		if st.Current == nil {
			return st, false, nil
		}
		var next State
		mode := "append"
		if s.upsert != nil && s.upsert(*st.Current) {
			mode = "upsert"
			next, profile = UpsertProfile(st, BuildProfile(*st.Current, f, stamp), stamp)
		} else {
			next, profile, _ = CreateProfile(st, st.Current, f, stamp)
		}
		return next, true, map[string]interface{}{"profile_id": profile.ID, "mode": mode}
	})
	return profile, ok
}

// CommitProfile upserts a fully built profile. It is the single write path
// used by the profile editor.
func (s *Store) CommitProfile(ctx context.Context, p models.Profile) models.Profile {
	var profile models.Profile
	s.apply(ctx, OpCommitProfile, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		var next State
		next, profile = UpsertProfile(st, p, stamp)
		return next, true, map[string]interface{}{"profile_id": profile.ID}
	})
	return profile
}

// PostResearch publishes a research opportunity as the current user.
func (s *Store) PostResearch(ctx context.Context, f ResearchFields) (models.ResearchPosting, bool) {
	var post models.ResearchPosting
	ok := s.apply(ctx, OpPostResearch, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		next, p, ok := PostResearch(st, st.Current, f, stamp)
		post = p
		return next, ok, map[string]interface{}{"post_id": p.ID}
	})
	return post, ok
}

// PostStartup publishes a startup idea as the current user.
func (s *Store) PostStartup(ctx context.Context, f StartupFields) (models.StartupPosting, bool) {
	var post models.StartupPosting
	ok := s.apply(ctx, OpPostStartup, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		next, p, ok := PostStartup(st, st.Current, f, stamp)
		post = p
		return next, ok, map[string]interface{}{"startup_id": p.ID}
	})
	return post, ok
}

// ApplyToResearch files a research application as the current user.
func (s *Store) ApplyToResearch(ctx context.Context, postID int64, f models.ResearchApplication) (models.Application, bool) {
	var app models.Application
	ok := s.apply(ctx, OpApplyToResearch, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		next, a, ok := ApplyToResearch(st, postID, st.Current, f, stamp)
		app = a
		return next, ok, map[string]interface{}{"post_id": postID, "application_id": a.ID}
	})
	return app, ok
}

// ApplyToIncubator files an incubator application as the current user.
func (s *Store) ApplyToIncubator(ctx context.Context, startupID int64, f models.IncubatorApplication) (models.Application, bool) {
	var app models.Application
	ok := s.apply(ctx, OpApplyToIncubator, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		next, a, ok := ApplyToIncubator(st, startupID, st.Current, f, s.cohort, stamp)
		app = a
		return next, ok, map[string]interface{}{"startup_id": startupID, "application_id": a.ID, "cohort": s.cohort}
	})
	return app, ok
}

// ExpressInterest records the current user's interest in a startup.
func (s *Store) ExpressInterest(ctx context.Context, startupID int64, message string) (models.Interest, bool) {
	var interest models.Interest
	ok := s.apply(ctx, OpExpressInterest, func(st State, stamp Stamp) (State, bool, map[string]interface{}) {
		next, in, ok := ExpressInterest(st, startupID, st.Current, message, stamp)
		interest = in
		return next, ok, map[string]interface{}{"startup_id": startupID, "interest_id": in.ID}
	})
	return interest, ok
}

type transition func(State, Stamp) (State, bool, map[string]interface{})

// apply runs fn against the current state under the write lock and installs
// the result when fn reports success. Hooks run after the lock is released.
func (s *Store) apply(ctx context.Context, op string, fn transition) bool {
	span, ctx := observability.NewSpan(ctx, "directory."+op, attribute.String("store.operation", op))
	defer span.End()

	s.mu.Lock()
	stamp := s.nextStamp()
	next, ok, fields := fn(s.state, stamp)
	if ok {
		s.state = next
	}
	sizes := sizesOf(s.state)
	hooks := append([]ChangeHook(nil), s.hooks...)
	s.mu.Unlock()

	span.AddAttributes(attribute.Bool("store.applied", ok))
	if !ok {
		span.SetError(ErrNoCurrentUser)
		observability.StoreMutations.WithLabelValues(op, "skipped").Inc()
		s.log.LogSkipped(ctx, op, ErrNoCurrentUser.Error())
		return false
	}

	observability.StoreMutations.WithLabelValues(op, "applied").Inc()
	observability.RecordCollectionSizes(sizes)
	if id := span.TraceID(); id != "" {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["trace_id"] = id
	}
	s.log.LogMutation(ctx, op, fields)
	for _, h := range hooks {
		h(ctx, op)
	}
	return true
}

// nextStamp derives an id from wall-clock milliseconds, bumped past the last
// id handed out so that two mutations in the same millisecond never collide.
// Callers must hold s.mu.
func (s *Store) nextStamp() Stamp {
	at := s.now()
	id := at.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return Stamp{ID: id, At: at}
}

func sizesOf(st State) observability.CollectionSizes {
	return observability.CollectionSizes{
		Profiles:     len(st.Profiles),
		Research:     len(st.Research),
		Startups:     len(st.Startups),
		Applications: len(st.Applications),
		Interests:    len(st.Interests),
	}
}

func maxID(st State) int64 {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	for _, p := range st.Profiles {
		bump(p.ID)
	}
	for _, p := range st.Research {
		bump(p.ID)
	}
	for _, p := range st.Startups {
		bump(p.ID)
	}
	for _, a := range st.Applications {
		bump(a.ID)
	}
	for _, in := range st.Interests {
		bump(in.ID)
	}
	return max
}
