package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// stubUserStore drives MutateUser without a database. Each load hands out a
// copy of base, mimicking a fresh row read; a configured number of saves fail
// with a version conflict first, and onConflict can mutate base in between to
// play the concurrent writer that won the race.
type stubUserStore struct {
	base       *model.User
	conflicts  int
	saveErr    error
	onConflict func(base *model.User)

	loads int
	saves int
	saved *model.User
}

func (s *stubUserStore) GetUser(userID string) (*model.User, error) {
	s.loads++
	u := *s.base
	return &u, nil
}

func (s *stubUserStore) SaveUserVersioned(user *model.User) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.conflicts > 0 {
		s.conflicts--
		if s.onConflict != nil {
			s.onConflict(s.base)
		}
		return shared.NewConflictError(shared.ErrVersionConflict, "User was modified concurrently")
	}
	s.saved = user
	s.base = user
	return nil
}

func TestMutateUser_RetriesOnConflictThenSucceeds(t *testing.T) {
	store := &stubUserStore{base: newTestUser(), conflicts: 2}
	svc := &UserService{store: store}

	err := svc.MutateUser("user_1", func(user *model.User) error {
		user.TotalPoints += 10
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, store.loads)
	assert.Equal(t, 3, store.saves)
	// Each attempt re-applies fn to a fresh load, so the win is not compounded.
	assert.Equal(t, 10, store.saved.TotalPoints)
}

func TestMutateUser_GivesUpAfterBoundedAttempts(t *testing.T) {
	store := &stubUserStore{base: newTestUser(), conflicts: maxMutateAttempts}
	svc := &UserService{store: store}

	err := svc.MutateUser("user_1", func(user *model.User) error {
		user.TotalPoints += 10
		return nil
	})

	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, maxMutateAttempts, store.saves)
	assert.Nil(t, store.saved)
}

func TestMutateUser_NonConflictErrorStopsImmediately(t *testing.T) {
	store := &stubUserStore{
		base:    newTestUser(),
		saveErr: shared.NewInternalError(nil, "Failed to save user"),
	}
	svc := &UserService{store: store}

	err := svc.MutateUser("user_1", func(user *model.User) error { return nil })

	require.Error(t, err)
	assert.False(t, shared.IsConflict(err))
	assert.Equal(t, 1, store.saves)
}

// Two badge checks racing on the same user: the loser's save conflicts, it
// reloads an aggregate that already carries the badge, and the second
// evaluation awards nothing, so the pair (user, badge) stays unique.
func TestMutateUser_ConcurrentBadgeCheckAwardsOnce(t *testing.T) {
	base := newTestUser()
	markCompleted(t, base, "c_greetings")

	now := time.Now()
	store := &stubUserStore{
		base:      base,
		conflicts: 1,
		onConflict: func(winner *model.User) {
			badges := winner.GetBadges()
			badges = append(badges, model.UserBadge{BadgeID: "badge_first", DateEarned: now})
			winner.SetBadges(badges)
		},
	}
	svc := &UserService{store: store}

	var awarded []model.Badge
	err := svc.MutateUser("user_1", func(user *model.User) error {
		awarded = EvaluateBadges(user, testBadgeCatalog(), testSections(), now)
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, awarded)
	badges := store.saved.GetBadges()
	require.Len(t, badges, 1)
	assert.Equal(t, "badge_first", badges[0].BadgeID)
}

func TestMutateUser_BadgeNotDuplicatedAcrossRetries(t *testing.T) {
	base := newTestUser()
	markCompleted(t, base, "c_greetings")
	store := &stubUserStore{base: base, conflicts: 2}
	svc := &UserService{store: store}

	err := svc.MutateUser("user_1", func(user *model.User) error {
		EvaluateBadges(user, testBadgeCatalog(), testSections(), time.Now())
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, store.saves)
	require.Len(t, store.saved.GetBadges(), 1)
	assert.Equal(t, "badge_first", store.saved.GetBadges()[0].BadgeID)
}
