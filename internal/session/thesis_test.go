package session

import (
	"context"
	"errors"
	"testing"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftThesis_RequiresMission(t *testing.T) {
	sess, st := newTestSession(t)

	err := sess.DraftThesis(context.Background())
	assert.ErrorIs(t, err, ErrNoMission)
	assert.Zero(t, st.thesis.calls)
}

func TestDraftThesis_RequiresRealExchange(t *testing.T) {
	sess, st := startedSession(t)

	// Only the bootstrap reply exists; the guard fires before any call.
	err := sess.DraftThesis(context.Background())
	assert.ErrorIs(t, err, ErrNotEnoughHistory)
	assert.Zero(t, st.thesis.calls)
}

func TestDraftThesis_MergesOverStudentEdits(t *testing.T) {
	sess, st := startedSession(t)
	ctx := context.Background()
	require.NoError(t, sess.Send(ctx, "I would pack water."))

	sess.SetThesis(domain.ThesisDocument{Title: "My Own Title", Conclusion: "My conclusion"})
	st.thesis.draft = &domain.ThesisDocument{
		Abstract:         "Synthesized abstract",
		ProposedSolution: "Nuclear power with lava tube shelter",
	}

	require.NoError(t, sess.DraftThesis(ctx))

	doc := sess.Thesis()
	assert.Equal(t, "My Own Title", doc.Title)
	assert.Equal(t, "My conclusion", doc.Conclusion)
	assert.Equal(t, "Synthesized abstract", doc.Abstract)
	assert.Equal(t, "Nuclear power with lava tube shelter", doc.ProposedSolution)
	assert.Equal(t, 1, st.thesis.calls)
}

func TestDraftThesis_PropagatesBackendError(t *testing.T) {
	sess, st := startedSession(t)
	ctx := context.Background()
	require.NoError(t, sess.Send(ctx, "hello"))

	sess.SetThesis(domain.ThesisDocument{Title: "Keep me"})
	st.thesis.err = errors.New("backend down")

	err := sess.DraftThesis(ctx)
	require.Error(t, err)
	assert.Equal(t, "Keep me", sess.Thesis().Title)
}

func TestCompileDeck_RequiresTitle(t *testing.T) {
	sess, _ := startedSession(t)

	err := sess.CompileDeck(context.Background())
	assert.ErrorIs(t, err, ErrNoThesisTitle)
}

func TestCompileDeck_PrependsTitleSlide(t *testing.T) {
	sess, st := startedSession(t)
	sess.SetThesis(domain.ThesisDocument{Title: "Restoring the Relay"})
	st.slides.slides = []domain.Slide{
		{ID: "s1", Title: "The Challenge", Points: []string{"p1"}},
		{ID: "s2", Title: "The Final Solution", Points: []string{"p2"}},
	}

	require.NoError(t, sess.CompileDeck(context.Background()))

	deck := sess.Deck()
	require.Len(t, deck, 3)
	assert.Equal(t, domain.TitleSlideID, deck[0].ID)
	assert.Equal(t, "Restoring the Relay", deck[0].Title)
	assert.Equal(t, domain.TitleSlidePoints, deck[0].Points)
	assert.Equal(t, "s1", deck[1].ID)
}

func TestCompileDeck_EmptyResultKeepsDeckEmpty(t *testing.T) {
	sess, st := startedSession(t)
	sess.SetThesis(domain.ThesisDocument{Title: "T"})
	st.slides.slides = nil

	require.NoError(t, sess.CompileDeck(context.Background()))
	assert.Empty(t, sess.Deck())
}

func TestCompileDeck_PropagatesBackendError(t *testing.T) {
	sess, st := startedSession(t)
	sess.SetThesis(domain.ThesisDocument{Title: "T"})
	st.slides.err = errors.New("backend down")

	assert.Error(t, sess.CompileDeck(context.Background()))
	assert.Empty(t, sess.Deck())
}
