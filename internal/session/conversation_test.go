package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(t *testing.T) (*Session, *stubs) {
	t.Helper()
	sess, st := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, sess.SelectMission(ctx, testMission()))
	require.NoError(t, sess.StartConversation(ctx))
	return sess, st
}

func TestStartConversation_RequiresMission(t *testing.T) {
	sess, _ := newTestSession(t)
	err := sess.StartConversation(context.Background())
	assert.ErrorIs(t, err, ErrNoMission)
}

func TestStartConversation_BootstrapIsHidden(t *testing.T) {
	sess, st := startedSession(t)

	// The bootstrap turn reaches the mentor but only the reply is shown.
	require.Len(t, st.mentor.sent, 1)
	assert.Equal(t, `Mission Start. Please ask me the Warm-Up Question: "What would you pack?"`, st.mentor.sent[0])

	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleMentor, history[0].Role)
}

func TestStartConversation_FailedBootstrapRetries(t *testing.T) {
	sess, st := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, sess.SelectMission(ctx, testMission()))

	st.mentor.errs = map[int]error{0: errors.New("network down")}
	require.Error(t, sess.StartConversation(ctx))

	// A failed hidden turn leaves no trace, so the warm-up is re-sent.
	assert.Empty(t, sess.History())

	require.NoError(t, sess.StartConversation(ctx))
	assert.Equal(t, 2, st.mentor.calls)
	require.Len(t, sess.History(), 1)
	assert.Equal(t, domain.RoleMentor, sess.History()[0].Role)
}

func TestStartConversation_SecondCallDoesNotRebootstrap(t *testing.T) {
	sess, st := startedSession(t)

	require.NoError(t, sess.StartConversation(context.Background()))
	assert.Len(t, st.mentor.sent, 1)
	assert.Len(t, sess.History(), 1)
}

func TestSend_PairsStudentAndMentorTurns(t *testing.T) {
	sess, _ := startedSession(t)
	ctx := context.Background()

	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, sess.Send(ctx, "turn"))
	}

	history := sess.History()
	// Bootstrap reply plus one pair per send.
	require.Len(t, history, 1+2*n)
	for i := 1; i < len(history); i += 2 {
		assert.Equal(t, domain.RoleStudent, history[i].Role)
		assert.Equal(t, domain.RoleMentor, history[i+1].Role)
	}
}

func TestSend_FailureAppendsErrorTurn(t *testing.T) {
	sess, st := startedSession(t)
	ctx := context.Background()

	st.mentor.errs = map[int]error{1: errors.New("network down"), 3: errors.New("still down")}

	for i := 0; i < 3; i++ {
		_ = sess.Send(ctx, "turn")
	}

	history := sess.History()
	// Pairing is unchanged even with failures interleaved.
	require.Len(t, history, 1+2*3)
	assert.Equal(t, "Connection interruption. Please retry transmission.", history[2].Text)
	assert.Equal(t, domain.RoleMentor, history[2].Role)
	assert.NotEqual(t, "Connection interruption. Please retry transmission.", history[4].Text)
}

func TestSend_WithoutConversation(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectMission(context.Background(), testMission()))

	err := sess.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoConversation)
}

func TestSend_LongReplyGetsIllustrated(t *testing.T) {
	sess, st := startedSession(t)
	st.mentor.reply = strings.Repeat("The crater rim glows at dawn. ", 3) // > 50 runes
	st.illustrations.images = []string{"data:a", "data:b"}

	require.NoError(t, sess.Send(context.Background(), "describe the view"))
	sess.Wait()

	history := sess.History()
	last := history[len(history)-1]
	assert.Equal(t, []string{"data:a", "data:b"}, last.Images)
	require.Len(t, st.illustrations.excerpts, 1)
	assert.Equal(t, st.mentor.reply, st.illustrations.excerpts[0])
}

func TestSend_ShortReplySkipsIllustration(t *testing.T) {
	sess, st := startedSession(t)
	st.mentor.reply = "Roger."

	require.NoError(t, sess.Send(context.Background(), "ok?"))
	sess.Wait()

	assert.Empty(t, st.illustrations.excerpts)
}

func TestSend_ExcerptCappedAt300Runes(t *testing.T) {
	sess, st := startedSession(t)
	st.mentor.reply = strings.Repeat("x", 400)
	st.illustrations.images = []string{"data:a"}

	require.NoError(t, sess.Send(context.Background(), "go on"))
	sess.Wait()

	require.Len(t, st.illustrations.excerpts, 1)
	assert.Len(t, []rune(st.illustrations.excerpts[0]), 300)
}

func TestPatchImages_MissingTurn(t *testing.T) {
	sess, _ := startedSession(t)
	assert.False(t, sess.PatchImages("no-such-id", []string{"data:x"}))
}

func TestPatchImages_SurvivesTranscriptReset(t *testing.T) {
	sess, _ := startedSession(t)
	turnID := sess.History()[0].ID

	// A new mission clears the transcript; the late patch must be a no-op.
	require.NoError(t, sess.SelectMission(context.Background(), testMission()))
	assert.False(t, sess.PatchImages(turnID, []string{"data:x"}))
}

func TestCommitDecision_RequiresDecisionText(t *testing.T) {
	sess, _ := startedSession(t)

	err := sess.CommitDecision(context.Background(), "Choose a power source", "", "because")
	assert.ErrorIs(t, err, ErrEmptyDecision)
	assert.Empty(t, sess.Decisions())
}

func TestCommitDecision_LogsAndSendsHiddenTurn(t *testing.T) {
	sess, st := startedSession(t)
	before := len(sess.History())

	err := sess.CommitDecision(context.Background(), "Choose a power source", "Nuclear", "survives the lunar night")
	require.NoError(t, err)

	decisions := sess.Decisions()
	require.Len(t, decisions, 1)
	assert.Equal(t, "Choose a power source", decisions[0].Question)

	last := st.mentor.sent[len(st.mentor.sent)-1]
	assert.Equal(t, `I have decided on "Choose a power source". Choice: Nuclear. Reasoning: survives the lunar night. What is the next step?`, last)

	// Only the mentor's acknowledgement lands in the visible history.
	history := sess.History()
	require.Len(t, history, before+1)
	assert.Equal(t, domain.RoleMentor, history[len(history)-1].Role)
}

func TestCommitDecision_FailureLeavesNoErrorTurn(t *testing.T) {
	sess, st := startedSession(t)
	before := len(sess.History())

	st.mentor.errs = map[int]error{st.mentor.calls: errors.New("network down")}
	err := sess.CommitDecision(context.Background(), "Choose a power source", "Nuclear", "night survival")
	require.Error(t, err)

	// The decision is logged, but the hidden notice never reached the
	// mentor and the transcript stays as it was.
	assert.Len(t, sess.Decisions(), 1)
	assert.Len(t, sess.History(), before)
}

func TestCommitDecision_CustomQuestionSentinel(t *testing.T) {
	sess, _ := startedSession(t)

	require.NoError(t, sess.CommitDecision(context.Background(), "", "improvise", "no challenge fits"))
	decisions := sess.Decisions()
	require.Len(t, decisions, 1)
	assert.Equal(t, domain.CustomDecisionQuestion, decisions[0].Question)
}

func TestIsResolved_ExactQuestionMatch(t *testing.T) {
	sess, _ := startedSession(t)
	ctx := context.Background()

	assert.False(t, sess.IsResolved("Choose a power source"))
	require.NoError(t, sess.CommitDecision(ctx, "Choose a power source", "Solar", "simpler"))

	assert.True(t, sess.IsResolved("Choose a power source"))
	assert.False(t, sess.IsResolved("Choose a power source."))
	assert.False(t, sess.IsResolved("choose a power source"))
}

func TestPendingChallenges_ShrinksInMissionOrder(t *testing.T) {
	sess, _ := startedSession(t)
	ctx := context.Background()

	assert.Equal(t, testMission().DecisionChallenges, sess.PendingChallenges())

	require.NoError(t, sess.CommitDecision(ctx, "Choose a location", "Lava Tubes", "radiation shelter"))
	assert.Equal(t, []string{"Choose a power source", "Choose a food source"}, sess.PendingChallenges())
}
