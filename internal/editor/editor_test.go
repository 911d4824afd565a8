package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"incubator/internal/directory"
	"incubator/internal/forms"
	"incubator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	faculty = models.User{ID: 1, Email: "schen@uoguelph.ca", Name: "schen", Role: models.RoleFaculty}
	student = models.User{ID: 2, Email: "arivera@uoguelph.ca", Name: "arivera", Role: models.RoleStudent}
)

func TestInitialState(t *testing.T) {
	t.Run("blank uses login name", func(t *testing.T) {
		f := InitialState(student, nil)
		assert.Equal(t, "arivera", f.Name)
		assert.Equal(t, "false", f.SupervisionAvailable)
		assert.Empty(t, f.Skills)
	})

	t.Run("seeded from faculty profile", func(t *testing.T) {
		f := InitialState(faculty, &models.Profile{
			Name: "Dr. Sarah Chen",
			Faculty: &models.FacultyDetails{
				Department:           "School of Computer Science",
				ResearchAreas:        []string{"Machine Learning", "Computer Vision"},
				SupervisionAvailable: true,
			},
		})
		assert.Equal(t, "Machine Learning, Computer Vision", f.ResearchAreas)
		assert.Equal(t, "true", f.SupervisionAvailable)
	})

	t.Run("seeded from student profile", func(t *testing.T) {
		f := InitialState(student, &models.Profile{
			Name: "Alex Rivera",
			Student: &models.StudentDetails{
				Year: "3rd Year", Program: "Computer Science",
				Skills: []string{"React", "Python"},
				Links:  models.Links{GitHub: "github.com/alexr"},
			},
		})
		assert.Equal(t, "React, Python", f.Skills)
		assert.Equal(t, "github.com/alexr", f.GitHub)
		assert.Empty(t, f.Department)
	})
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		form forms.ProfileForm
		ok   bool
	}{
		{name: "blank name", role: models.RoleStudent, form: forms.ProfileForm{Name: " ", Year: "1", Program: "CS"}},
		{name: "faculty without department", role: models.RoleFaculty, form: forms.ProfileForm{Name: "x"}},
		{name: "faculty complete", role: models.RoleFaculty, form: forms.ProfileForm{Name: "x", Department: "CS"}, ok: true},
		{name: "student without program", role: models.RoleStudent, form: forms.ProfileForm{Name: "x", Year: "1"}},
		{name: "student complete", role: models.RoleStudent, form: forms.ProfileForm{Name: "x", Year: "1", Program: "CS"}, ok: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanSubmit(tc.role, tc.form))
		})
	}
}

func TestPayload(t *testing.T) {
	p := Payload(student, forms.ProfileForm{
		Name:     "  Alex Rivera ",
		Year:     "3rd Year",
		Program:  "Computer Science",
		Skills:   "",
		Clubs:    "Tech Club, ",
		Resume:   "  ",
		LinkedIn: " linkedin.com/in/alexr ",
	})
	require.NotNil(t, p.Student)
	assert.Nil(t, p.Faculty)
	assert.Equal(t, "Alex Rivera", p.Name)
	assert.Equal(t, []string{}, p.Student.Skills)
	assert.Equal(t, []string{"Tech Club"}, p.Student.Clubs)
	assert.Empty(t, p.Student.Resume)
	assert.Equal(t, "linkedin.com/in/alexr", p.Student.Links.LinkedIn)
	assert.Equal(t, student.Email, p.Email)
}

func collect() (func(Result), func() Result) {
	ch := make(chan Result, 1)
	return func(r Result) { ch <- r }, func() Result { return <-ch }
}

func TestSubmit_SavesAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var saved []models.Profile
	saver := SaverFunc(func(_ context.Context, p models.Profile) (models.Profile, error) {
		mu.Lock()
		defer mu.Unlock()
		p.ID = 42
		saved = append(saved, p)
		return p, nil
	})

	e := New(saver, 10*time.Millisecond)
	done, wait := collect()
	start := time.Now()
	_, err := e.Submit(context.Background(), faculty, forms.ProfileForm{Name: "Dr. Sarah Chen", Department: "CS"}, done)
	require.NoError(t, err)
	assert.Equal(t, StateSaving, e.Status(faculty.Email).State)

	res := wait()
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Nil(t, res.Err)
	assert.Equal(t, int64(42), res.Profile.ID)
	e.Wait()

	st := e.Status(faculty.Email)
	assert.Equal(t, StateSaved, st.State)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "Dr. Sarah Chen", st.Profile.Name)
	assert.Equal(t, int64(42), st.Profile.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, saved, 1)
}

func TestSubmit_RejectsIncompleteForm(t *testing.T) {
	e := New(SaverFunc(func(_ context.Context, p models.Profile) (models.Profile, error) { return p, nil }), time.Millisecond)
	_, err := e.Submit(context.Background(), faculty, forms.ProfileForm{Name: "x"}, nil)
	assert.ErrorIs(t, err, ErrCannotSubmit)
	assert.Equal(t, StateIdle, e.Status(faculty.Email).State)
}

func TestSubmit_SaveFailure(t *testing.T) {
	e := New(SaverFunc(func(context.Context, models.Profile) (models.Profile, error) {
		return models.Profile{}, errors.New("Request failed")
	}), time.Millisecond)

	done, wait := collect()
	_, err := e.Submit(context.Background(), student, forms.ProfileForm{Name: "x", Year: "1", Program: "CS"}, done)
	require.NoError(t, err)

	res := wait()
	require.NotNil(t, res.Err)
	assert.Equal(t, "Request failed", res.Err.Reason)
	e.Wait()
	assert.Equal(t, Status{State: StateFailed, Error: "Request failed"}, e.Status(student.Email))
}

func TestSubmit_Canceled(t *testing.T) {
	called := false
	e := New(SaverFunc(func(_ context.Context, p models.Profile) (models.Profile, error) {
		called = true
		return p, nil
	}), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done, wait := collect()
	_, err := e.Submit(ctx, student, forms.ProfileForm{Name: "x", Year: "1", Program: "CS"}, done)
	require.NoError(t, err)
	cancel()

	res := wait()
	require.NotNil(t, res.Err)
	assert.Equal(t, "canceled", res.Err.Reason)
	e.Wait()
	assert.False(t, called)
}

func TestStoreSaver_CommitsIntoDirectory(t *testing.T) {
	ctx := context.Background()
	store := directory.NewStore(directory.Options{})
	user := store.Login(ctx, "arivera@uoguelph.ca", models.RoleStudent)
	store.CreateProfile(ctx, directory.ProfileFields{Name: "Alex"})

	e := New(StoreSaver{Store: store}, time.Millisecond)
	existing, _ := store.Snapshot().ProfileFor(user.Email)
	f := InitialState(user, &existing)
	f.Name = "Alex Rivera"
	f.Year = "3rd Year"
	f.Program = "Computer Science"

	_, err := e.Submit(ctx, user, f, nil)
	require.NoError(t, err)
	e.Wait()

	stored, ok := store.Snapshot().ProfileFor(user.Email)
	require.True(t, ok)
	assert.Len(t, store.Snapshot().Profiles, 1)
	assert.Equal(t, "Alex Rivera", stored.Name)
	assert.Equal(t, existing.ID, stored.ID)

	st := e.Status(user.Email)
	require.NotNil(t, st.Profile)
	assert.Equal(t, stored, *st.Profile)
}
