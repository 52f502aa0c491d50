package registrations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pet-walks/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID     map[string]Registration
	deleted  []string
	promoted []string
	calls    int

	promoteErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Registration{}}
}

func (r *testRepo) Create(ctx context.Context, reg Registration) (Registration, error) {
	r.calls++
	r.byID[reg.ID] = reg
	return reg, nil
}

func (r *testRepo) List(ctx context.Context) ([]Registration, error) {
	r.calls++
	out := make([]Registration, 0, len(r.byID))
	for _, reg := range r.byID {
		out = append(out, reg)
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Registration, error) {
	r.calls++
	reg, ok := r.byID[id]
	if !ok {
		return Registration{}, apperr.NotFound("test.get", "registration not found")
	}
	return reg, nil
}

func (r *testRepo) GetByUser(ctx context.Context, userID string) (Registration, error) {
	r.calls++
	for _, reg := range r.byID {
		if reg.UserID == userID {
			return reg, nil
		}
	}
	return Registration{}, apperr.NotFound("test.get_by_user", "registration not found")
}

func (r *testRepo) ListByStatus(ctx context.Context, status Status) ([]Registration, error) {
	r.calls++
	out := make([]Registration, 0)
	for _, reg := range r.byID {
		if reg.Status == status {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, reg Registration) (Registration, error) {
	r.calls++
	if _, ok := r.byID[reg.ID]; !ok {
		return Registration{}, apperr.NotFound("test.update", "registration not found")
	}
	r.byID[reg.ID] = reg
	return reg, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.calls++
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *testRepo) PromoteToWalker(ctx context.Context, userID string) error {
	r.calls++
	if r.promoteErr != nil {
		return r.promoteErr
	}
	r.promoted = append(r.promoted, userID)
	return nil
}

var art = time.FixedZone("ART", -3*60*60)

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, art)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func validInput() SubmitInput {
	return SubmitInput{
		UserID:   "user-1",
		FullName: "  María Gómez ",
		Phone:    "(011) 4555-1234",
		DNI:      "30123456",
		City:     "Rosario",
		Province: "Santa Fe",
		Images:   &Images{DNIFront: "front.jpg", DNIBack: "back.jpg", SelfieWithDNI: "selfie.jpg"},
	}
}

// registration con el mínimo que otorga cada punto
func minimalFullCredit(submittedAt time.Time) Registration {
	return Registration{
		FullName:    "Abcde",
		Phone:       "12345678",
		DNI:         "1234567",
		City:        "Abc",
		Province:    "Xyz",
		Images:      Images{DNIFront: "a", DNIBack: "b", SelfieWithDNI: "c"},
		SubmittedAt: submittedAt,
	}
}

// -------------------------
// Tests
// -------------------------

func TestCalculateApplicationScore_Boundaries(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 4, 1, h, m, 0, 0, art) }

	assert.Equal(t, 100, CalculateApplicationScore(minimalFullCredit(at(9, 0)), art), "hour 9 qualifies")
	assert.Equal(t, 100, CalculateApplicationScore(minimalFullCredit(at(17, 59)), art), "hour 17 qualifies")
	assert.Equal(t, 99, CalculateApplicationScore(minimalFullCredit(at(8, 59)), art))
	assert.Equal(t, 99, CalculateApplicationScore(minimalFullCredit(at(18, 0)), art))

	// la hora se toma en la zona del negocio: 12:00 UTC = 09:00 ART
	utcNoon := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 100, CalculateApplicationScore(minimalFullCredit(utcNoon), art))
	utcMorning := time.Date(2026, 4, 1, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 99, CalculateApplicationScore(minimalFullCredit(utcMorning), art))

	partial := minimalFullCredit(at(20, 0))
	partial.FullName = "Ana"
	partial.DNI = "12ab567"
	partial.Images.SelfieWithDNI = ""
	assert.Equal(t, 99-20-20-8, CalculateApplicationScore(partial, art))

	assert.Equal(t, 0, CalculateApplicationScore(Registration{}, art))
}

func TestSubmit_RoundTrip(t *testing.T) {
	now := time.Date(2026, 4, 1, 15, 30, 0, 0, art)
	svc, repo := newTestService(now)

	reg, err := svc.SubmitWalkerRegistration(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, reg.Status)
	assert.Nil(t, reg.ApplicationScore)
	assert.Nil(t, reg.ReviewedAt)
	assert.Equal(t, "María Gómez", reg.FullName)
	assert.Equal(t, "01145551234", reg.Phone)
	assert.True(t, reg.SubmittedAt.Equal(now))
	assert.Regexp(t, regexp.MustCompile(`^REG-\d+-\d{1,3}$`), reg.ID)
	assert.Contains(t, reg.ID, "REG-1775068200000-")

	stored := repo.byID[reg.ID]
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.ApplicationScore)
}

func TestSubmit_Validation(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()

	mut := []func(*SubmitInput){
		func(in *SubmitInput) { in.FullName = "  " },
		func(in *SubmitInput) { in.UserID = "" },
		func(in *SubmitInput) { in.City = "" },
		func(in *SubmitInput) { in.Images = nil },
		func(in *SubmitInput) { in.DNI = "123456" },
		func(in *SubmitInput) { in.DNI = "123456789" },
		func(in *SubmitInput) { in.DNI = "12.345.678" },
		func(in *SubmitInput) { in.Phone = "123-4567" },
		func(in *SubmitInput) { in.Phone = "1234567890123456" },
		func(in *SubmitInput) { in.Phone = "+54 11 4555 1234" },
		func(in *SubmitInput) { in.Images = &Images{DNIFront: "a", DNIBack: "b"} },
		func(in *SubmitInput) { in.Images = &Images{DNIFront: " ", DNIBack: "b", SelfieWithDNI: "c"} },
	}
	for i, m := range mut {
		in := validInput()
		m(&in)
		_, err := svc.SubmitWalkerRegistration(ctx, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "case %d", i)
	}
	assert.Equal(t, 0, repo.calls)
}

func TestSubmit_RejectsSecondApplication(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	_, err := svc.SubmitWalkerRegistration(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.SubmitWalkerRegistration(ctx, validInput())
	assert.ErrorIs(t, err, apperr.ErrState)
}

func TestUpdateRegistrationStatus(t *testing.T) {
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, art)
	svc, repo := newTestService(now)
	ctx := context.Background()

	repo.byID["r1"] = Registration{ID: "r1", UserID: "u1", Status: StatusPending}
	full := minimalFullCredit(time.Date(2026, 4, 1, 9, 0, 0, 0, art))
	full.ID, full.UserID, full.Status = "r2", "u2", StatusPending
	repo.byID["r2"] = full

	_, err := svc.UpdateRegistrationStatus(ctx, "r1", "archived", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UpdateRegistrationStatus(ctx, "nope", StatusApproved, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	rev, err := svc.UpdateRegistrationStatus(ctx, "r1", StatusUnderReview, "  revisar selfie ")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, rev.Status)
	assert.Equal(t, "revisar selfie", rev.AdminNotes)
	require.NotNil(t, rev.ReviewedAt)
	assert.True(t, rev.ReviewedAt.Equal(now))
	assert.Nil(t, rev.ApplicationScore)

	ok, err := svc.UpdateRegistrationStatus(ctx, "r2", StatusApproved, "")
	require.NoError(t, err)
	require.NotNil(t, ok.ApplicationScore)
	assert.Equal(t, 100, *ok.ApplicationScore)
	assert.Equal(t, []string{"u2"}, repo.promoted)

	// aprobada es final: no vuelve a rechazada ni a pendiente
	for _, to := range []Status{StatusRejected, StatusPending, StatusApproved} {
		_, err = svc.UpdateRegistrationStatus(ctx, "r2", to, "")
		assert.ErrorIs(t, err, apperr.ErrState, to)
	}
	assert.Equal(t, StatusApproved, repo.byID["r2"].Status)
	assert.Equal(t, []string{"u2"}, repo.promoted)

	err = svc.RetryRejectedApplication(ctx, "u2")
	assert.ErrorIs(t, err, apperr.ErrState)
	assert.Contains(t, repo.byID, "r2")
}

func TestReviewApplication_FailedPromotionCanBeRetried(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()

	reg, err := svc.SubmitWalkerRegistration(ctx, validInput())
	require.NoError(t, err)

	repo.promoteErr = apperr.Network("test.promote", 503, errors.New("users down"))
	_, err = svc.ReviewApplication(ctx, reg.ID, DecisionApprove, "ok", "Admin Uno")
	assert.ErrorIs(t, err, apperr.ErrNetwork)
	assert.Equal(t, StatusPending, repo.byID[reg.ID].Status, "sin promoción no queda aprobada")
	assert.Nil(t, repo.byID[reg.ID].ApplicationScore)

	repo.promoteErr = nil
	out, err := svc.ReviewApplication(ctx, reg.ID, DecisionApprove, "ok", "Admin Uno")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, []string{"user-1"}, repo.promoted)
}

func TestReviewApplication_PromotesOnApproval(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()

	reg, err := svc.SubmitWalkerRegistration(ctx, validInput())
	require.NoError(t, err)

	out, err := svc.ReviewApplication(ctx, reg.ID, DecisionApprove, "ok", "Admin Uno")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, "Admin Uno", out.ReviewedBy)
	assert.NotNil(t, out.ApplicationScore)
	assert.Equal(t, []string{"user-1"}, repo.promoted)

	_, err = svc.ReviewApplication(ctx, reg.ID, DecisionReject, "", "Admin Uno")
	assert.ErrorIs(t, err, apperr.ErrState)

	_, err = svc.ReviewApplication(ctx, reg.ID, "maybe", "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRetryRejectedApplication(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()

	repo.byID["r1"] = Registration{ID: "r1", UserID: "approved-user", Status: StatusApproved}
	err := svc.RetryRejectedApplication(ctx, "approved-user")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrState)
	assert.Empty(t, repo.deleted)
	assert.Contains(t, repo.byID, "r1")

	err = svc.RetryRejectedApplication(ctx, "nobody")
	assert.ErrorIs(t, err, apperr.ErrState)

	repo.byID["r2"] = Registration{ID: "r2", UserID: "rejected-user", Status: StatusRejected}
	before := len(repo.byID)
	require.NoError(t, svc.RetryRejectedApplication(ctx, "rejected-user"))
	assert.Equal(t, []string{"r2"}, repo.deleted)
	assert.Len(t, repo.byID, before-1, "retry only deletes")

	// ahora puede volver a enviar
	in := validInput()
	in.UserID = "rejected-user"
	_, err = svc.SubmitWalkerRegistration(ctx, in)
	require.NoError(t, err)
}

func TestStats_SinglePassAndStrictRecentWindow(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	items := []Registration{
		{Status: StatusPending, SubmittedAt: now.Add(-time.Hour)},
		{Status: StatusApproved, SubmittedAt: now.Add(-RecentWindow)},
		{Status: StatusRejected, SubmittedAt: now.Add(-RecentWindow + time.Second)},
		{Status: StatusUnderReview, SubmittedAt: now.Add(-30 * 24 * time.Hour)},
		{Status: StatusPending, SubmittedAt: now.Add(-8 * 24 * time.Hour)},
	}

	st := ComputeStats(items, now)
	assert.Equal(t, Stats{
		Total:             5,
		Pending:           2,
		Approved:          1,
		Rejected:          1,
		UnderReview:       1,
		RecentSubmissions: 2, // exactamente now-7d no cuenta
	}, st)
}

func TestListings_NewestFirst(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.byID["a"] = Registration{ID: "a", Status: StatusPending, SubmittedAt: base}
	repo.byID["b"] = Registration{ID: "b", Status: StatusApproved, SubmittedAt: base.Add(48 * time.Hour)}
	repo.byID["c"] = Registration{ID: "c", Status: StatusPending, SubmittedAt: base.Add(24 * time.Hour)}

	all, err := svc.GetAllRegistrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending, err := svc.ListByStatus(ctx, StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "c", pending[0].ID)

	_, err = svc.ListByStatus(ctx, "nope")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewApplication_ReadsRecordOnce(t *testing.T) {
	svc, repo := newTestService(time.Now())
	ctx := context.Background()

	reg, err := svc.SubmitWalkerRegistration(ctx, validInput())
	require.NoError(t, err)

	// GetByID + Update
	before := repo.calls
	_, err = svc.ReviewApplication(ctx, reg.ID, DecisionReview, "falta selfie", "Admin Uno")
	require.NoError(t, err)
	assert.Equal(t, before+2, repo.calls)

	// GetByID + PromoteToWalker + Update
	before = repo.calls
	_, err = svc.ReviewApplication(ctx, reg.ID, DecisionApprove, "ok", "Admin Uno")
	require.NoError(t, err)
	assert.Equal(t, before+3, repo.calls)
}
