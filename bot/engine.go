package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quotabot/models"
	"quotabot/repository"
)

// Engine routes inbound WhatsApp text through the menu and quote-form
// state machines. It is driven by the connection manager's serialized
// event dispatch, so one inbound message is always handled to
// completion before the next.
type Engine struct {
	sessions    SessionStore
	users       repository.UserRepository
	leads       repository.LeadRepository
	messages    repository.MessageRepository
	sessionRepo repository.SessionRepository
	feed        *Broadcaster
	log         *logrus.Logger
}

func NewEngine(
	sessions SessionStore,
	users repository.UserRepository,
	leads repository.LeadRepository,
	messages repository.MessageRepository,
	sessionRepo repository.SessionRepository,
	feed *Broadcaster,
	log *logrus.Logger,
) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		sessions:    sessions,
		users:       users,
		leads:       leads,
		messages:    messages,
		sessionRepo: sessionRepo,
		feed:        feed,
		log:         log,
	}
}

// HandleInbound processes one inbound message and returns the reply to
// send, or "" when there is nothing to say. An empty text is a full
// no-op: no session lookup, no logging.
func (e *Engine) HandleInbound(identity, pushName, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	if _, err := e.users.UpsertUser(identity, pushName); err != nil {
		// Not fatal for the conversation; the dashboard just misses a
		// push-name refresh.
		e.log.WithError(err).WithField("identity", identity).Warn("user upsert failed")
	}

	if err := e.record(identity, models.DirectionReceived, text, false); err != nil {
		return "", err
	}

	session, err := e.sessions.Get(identity)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		session = NewSession(identity)
		if e.sessionRepo != nil {
			if _, err := e.sessionRepo.CreateSession(identity); err != nil {
				e.log.WithError(err).WithField("identity", identity).Warn("session row create failed")
			}
		}
	}

	var reply string
	switch session.CurrentMenu {
	case MenuLeadForm:
		reply, err = e.stepLeadForm(session, text)
	default:
		reply = e.stepMenu(session, text)
	}
	if err != nil {
		return "", err
	}

	session.LastActivity = time.Now()
	if putErr := e.sessions.Put(session); putErr != nil {
		return "", fmt.Errorf("save session: %w", putErr)
	}
	e.syncSessionRow(session)

	if reply != "" {
		if err := e.record(identity, models.DirectionSent, reply, true); err != nil {
			return "", err
		}
	}
	return reply, nil
}

// stepMenu runs one step of the main menu machine. Selecting the quote
// option is the only branch with a side effect: it moves the session
// into the form machine.
func (e *Engine) stepMenu(session *Session, text string) string {
	action := resolveMenuAction(text)
	if action == actionStartQuote {
		session.CurrentMenu = MenuLeadForm
		session.LeadFormStep = stepProjectType
		return projectTypePrompt
	}
	return menuResponses[action]
}

// stepLeadForm runs one step of the quote form. Exit keywords win over
// step parsing at every step.
func (e *Engine) stepLeadForm(session *Session, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if exitKeywords[strings.ToLower(trimmed)] {
		session.Reset()
		return rootMenuText, nil
	}

	switch session.LeadFormStep {
	case stepProjectType:
		session.Draft.ProjectType = trimmed
		session.LeadFormStep = stepBudget
		return budgetPrompt, nil

	case stepBudget:
		session.Draft.Budget = decodeOption(budgetLabels, trimmed)
		session.LeadFormStep = stepTimeline
		return timelinePrompt, nil

	case stepTimeline:
		session.Draft.Timeline = decodeOption(timelineLabels, trimmed)
		session.LeadFormStep = stepDescription
		return descriptionPrompt, nil

	case stepDescription:
		session.Draft.Description = trimmed
		session.LeadFormStep = stepName
		return namePrompt, nil

	case stepName:
		session.Draft.Name = trimmed
		lead := &models.Lead{
			Identity:    session.Identity,
			Name:        session.Draft.Name,
			ProjectType: session.Draft.ProjectType,
			Budget:      session.Draft.Budget,
			Timeline:    session.Draft.Timeline,
			Description: session.Draft.Description,
			Status:      models.LeadStatusNew,
		}
		if err := e.leads.CreateLead(lead); err != nil {
			return "", fmt.Errorf("create lead: %w", err)
		}
		e.log.WithFields(logrus.Fields{
			"identity": session.Identity,
			"lead_id":  lead.ID,
		}).Info("lead captured")
		summary := leadSummary(lead.Name, lead.ProjectType, lead.Budget, lead.Timeline)
		session.Reset()
		return summary, nil

	default:
		// Step outside 1..5 should be unreachable; fall back to the menu.
		session.Reset()
		return rootMenuText, nil
	}
}

// record persists one log entry and feeds it to dashboard subscribers.
func (e *Engine) record(identity, direction, content string, isBot bool) error {
	msg := &models.BotMessage{
		Identity:  identity,
		Direction: direction,
		Content:   content,
		IsBot:     isBot,
	}
	if err := e.messages.CreateMessage(msg); err != nil {
		return fmt.Errorf("log %s message: %w", direction, err)
	}
	if e.feed != nil {
		e.feed.Publish(*msg)
	}
	return nil
}

// syncSessionRow mirrors the live session into the dashboard table.
// Best effort only.
func (e *Engine) syncSessionRow(session *Session) {
	if e.sessionRepo == nil {
		return
	}
	if err := e.sessionRepo.UpdateSession(session.Identity, session.CurrentMenu, session.LeadFormStep); err != nil {
		e.log.WithError(err).WithField("identity", session.Identity).Warn("session row sync failed")
	}
}
