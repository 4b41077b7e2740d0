package bot

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotabot/models"
	"quotabot/repository"
)

type engineFixture struct {
	engine   *Engine
	sessions *MemorySessionStore
	leads    *repository.MemoryLeadRepo
	messages *repository.MemoryMessageRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	sessions := NewMemorySessionStore()
	leads := repository.NewMemoryLeadRepo()
	messages := repository.NewMemoryMessageRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	engine := NewEngine(
		sessions,
		repository.NewMemoryUserRepo(),
		leads,
		messages,
		repository.NewMemorySessionRepo(),
		NewBroadcaster(),
		log,
	)
	return &engineFixture{engine: engine, sessions: sessions, leads: leads, messages: messages}
}

func (f *engineFixture) send(t *testing.T, identity, text string) string {
	t.Helper()
	reply, err := f.engine.HandleInbound(identity, "Tester", text)
	require.NoError(t, err)
	return reply
}

func (f *engineFixture) session(t *testing.T, identity string) *Session {
	t.Helper()
	session, err := f.sessions.Get(identity)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func TestHandleInbound_EmptyTextIsNoOp(t *testing.T) {
	f := newEngineFixture(t)

	for _, input := range []string{"", "   ", "\n\t"} {
		reply, err := f.engine.HandleInbound("2348000000001", "Tester", input)
		require.NoError(t, err)
		assert.Empty(t, reply)
	}

	messages, err := f.messages.GetMessages("2348000000001", 0)
	require.NoError(t, err)
	assert.Empty(t, messages, "empty input must produce zero repository writes")

	session, err := f.sessions.Get("2348000000001")
	require.NoError(t, err)
	assert.Nil(t, session, "empty input must not create a session")
}

func TestHandleInbound_UnknownInputReturnsRootMenu(t *testing.T) {
	f := newEngineFixture(t)

	reply := f.send(t, "2348000000001", "blargh")
	assert.Equal(t, rootMenuText, reply)

	// Idempotent default: same input, same answer.
	assert.Equal(t, rootMenuText, f.send(t, "2348000000001", "blargh"))
}

func TestHandleInbound_AliasReturnsCannedResponse(t *testing.T) {
	f := newEngineFixture(t)

	assert.Equal(t, menuResponses[actionAIInfo], f.send(t, "234A", "1"))
	assert.Equal(t, menuResponses[actionAIInfo], f.send(t, "234A", "machine learning"))
	// Regardless of session history.
	f.send(t, "234A", "portfolio")
	assert.Equal(t, menuResponses[actionAIInfo], f.send(t, "234A", "ai"))
}

func TestHandleInbound_LogsBothDirections(t *testing.T) {
	f := newEngineFixture(t)

	f.send(t, "234B", "hello")

	messages, err := f.messages.GetMessages("234B", 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	// Newest first: the bot reply, then the inbound text.
	assert.Equal(t, models.DirectionSent, messages[0].Direction)
	assert.True(t, messages[0].IsBot)
	assert.Equal(t, models.DirectionReceived, messages[1].Direction)
	assert.False(t, messages[1].IsBot)
	assert.Equal(t, "hello", messages[1].Content)
}

func TestHandleInbound_QuoteSelectionEntersForm(t *testing.T) {
	f := newEngineFixture(t)

	reply := f.send(t, "234C", "8")
	assert.Equal(t, projectTypePrompt, reply)

	session := f.session(t, "234C")
	assert.Equal(t, MenuLeadForm, session.CurrentMenu)
	assert.Equal(t, stepProjectType, session.LeadFormStep)
}

func TestLeadForm_ExitKeywordsResetAtEveryStep(t *testing.T) {
	// Answers that move a fresh form to steps 1 through 5.
	steps := [][]string{
		{},
		{"an app"},
		{"an app", "2"},
		{"an app", "2", "1"},
		{"an app", "2", "1", "lots of stuff"},
	}
	exits := []string{"menu", "CANCEL", "exit", "Back", "cancel"}

	for i, prefix := range steps {
		f := newEngineFixture(t)
		identity := "234D"
		f.send(t, identity, "8")
		for _, answer := range prefix {
			f.send(t, identity, answer)
		}

		reply := f.send(t, identity, exits[i])
		assert.Equal(t, rootMenuText, reply, "exit at step %d", i+1)

		session := f.session(t, identity)
		assert.Equal(t, MenuMain, session.CurrentMenu)
		assert.Equal(t, 0, session.LeadFormStep)
		assert.Equal(t, LeadDraft{}, session.Draft)

		leads, err := f.leads.GetLeads("")
		require.NoError(t, err)
		assert.Empty(t, leads, "abandoning the form must not create a lead")
	}
}

func TestLeadForm_BudgetAndTimelineDecoding(t *testing.T) {
	f := newEngineFixture(t)
	identity := "234E"

	f.send(t, identity, "8")
	f.send(t, identity, "marketplace site")
	f.send(t, identity, "3") // budget code
	f.send(t, identity, "2") // timeline code

	session := f.session(t, identity)
	assert.Equal(t, "₦1M - ₦3M", session.Draft.Budget)
	assert.Equal(t, "1-3 months", session.Draft.Timeline)
}

func TestLeadForm_NonNumericAnswersStoredVerbatim(t *testing.T) {
	f := newEngineFixture(t)
	identity := "234F"

	f.send(t, identity, "8")
	f.send(t, identity, "a website")
	f.send(t, identity, "about two million naira")
	f.send(t, identity, "before christmas")

	session := f.session(t, identity)
	assert.Equal(t, "about two million naira", session.Draft.Budget)
	assert.Equal(t, "before christmas", session.Draft.Timeline)
}

func TestLeadForm_FullWalkthroughCreatesOneLeadAndResets(t *testing.T) {
	f := newEngineFixture(t)
	identity := "2348012345678"

	assert.Equal(t, projectTypePrompt, f.send(t, identity, "8"))
	assert.Equal(t, budgetPrompt, f.send(t, identity, "1"))
	assert.Equal(t, timelinePrompt, f.send(t, identity, "2"))
	assert.Equal(t, descriptionPrompt, f.send(t, identity, "3 weeks"))
	assert.Equal(t, namePrompt, f.send(t, identity, "build me an app"))

	summary := f.send(t, identity, "Ada")
	assert.Contains(t, summary, "Ada")

	leads, err := f.leads.GetLeads("")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	lead := leads[0]
	assert.Equal(t, identity, lead.Identity)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	// Step 1 is free text, so "1" is the literal project type.
	assert.Equal(t, "1", lead.ProjectType)
	assert.Equal(t, "₦500K - ₦1M", lead.Budget)
	// "3 weeks" is not a timeline code and is stored verbatim.
	assert.Equal(t, "3 weeks", lead.Timeline)
	assert.Equal(t, "build me an app", lead.Description)
	assert.Equal(t, "Ada", lead.Name)

	// The session is immediately reusable for a fresh quote.
	session := f.session(t, identity)
	assert.Equal(t, MenuMain, session.CurrentMenu)
	assert.Equal(t, 0, session.LeadFormStep)
	assert.Equal(t, LeadDraft{}, session.Draft)

	assert.Equal(t, projectTypePrompt, f.send(t, identity, "8"))
}

func TestLeadForm_InvalidStepFallsBackToMenu(t *testing.T) {
	f := newEngineFixture(t)
	identity := "234G"

	// Force a corrupt step value.
	require.NoError(t, f.sessions.Put(&Session{
		Identity:     identity,
		CurrentMenu:  MenuLeadForm,
		LeadFormStep: 42,
	}))

	reply := f.send(t, identity, "whatever")
	assert.Equal(t, rootMenuText, reply)

	session := f.session(t, identity)
	assert.Equal(t, MenuMain, session.CurrentMenu)
	assert.Equal(t, 0, session.LeadFormStep)
}

func TestBroadcaster_FeedsSubscribers(t *testing.T) {
	f := newEngineFixture(t)
	feed := NewBroadcaster()
	f.engine.feed = feed

	events, cancel := feed.Subscribe()
	defer cancel()

	f.send(t, "234H", "hello")

	first := <-events
	assert.Equal(t, models.DirectionReceived, first.Direction)
	assert.Equal(t, "hello", first.Content)
	second := <-events
	assert.Equal(t, models.DirectionSent, second.Direction)
}
