package repository

import (
	"sort"
	"sync"
	"time"

	"quotabot/models"
)

// In-memory repositories. Used by tests and by the zero-config mode
// where no database is wired up.

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
	seq   uint
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) UpsertUser(identity, pushName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[identity]
	if !ok {
		r.seq++
		user = models.User{Identity: identity}
		user.ID = r.seq
		user.CreatedAt = time.Now()
	}
	user.PushName = pushName
	user.LastSeenAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[identity] = user
	return &user, nil
}

func (r *MemoryUserRepo) GetUsers() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LastSeenAt.After(users[j].LastSeenAt) })
	return users, nil
}

type MemoryLeadRepo struct {
	mu    sync.RWMutex
	leads []models.Lead
	seq   uint
}

func NewMemoryLeadRepo() *MemoryLeadRepo {
	return &MemoryLeadRepo{}
}

func (r *MemoryLeadRepo) CreateLead(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	lead.ID = r.seq
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *MemoryLeadRepo) GetLeads(status string) ([]models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var leads []models.Lead
	for i := len(r.leads) - 1; i >= 0; i-- {
		if status == "" || r.leads[i].Status == status {
			leads = append(leads, r.leads[i])
		}
	}
	return leads, nil
}

func (r *MemoryLeadRepo) GetLeadsByIdentity(identity string) ([]models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var leads []models.Lead
	for i := len(r.leads) - 1; i >= 0; i-- {
		if r.leads[i].Identity == identity {
			leads = append(leads, r.leads[i])
		}
	}
	return leads, nil
}

func (r *MemoryLeadRepo) UpdateLeadStatus(id uint, status string) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads[i].Status = status
			r.leads[i].UpdatedAt = time.Now()
			lead := r.leads[i]
			return &lead, nil
		}
	}
	return nil, nil
}

type MemoryMessageRepo struct {
	mu       sync.RWMutex
	messages []models.BotMessage
	seq      uint
}

func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{}
}

func (r *MemoryMessageRepo) CreateMessage(msg *models.BotMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg.ID = r.seq
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemoryMessageRepo) GetMessages(identity string, limit int) ([]models.BotMessage, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var messages []models.BotMessage
	for i := len(r.messages) - 1; i >= 0 && len(messages) < limit; i-- {
		if r.messages[i].Identity == identity {
			messages = append(messages, r.messages[i])
		}
	}
	return messages, nil
}

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.UserSession
	seq      uint
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]models.UserSession)}
}

func (r *MemorySessionRepo) CreateSession(identity string) (*models.UserSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[identity]; ok {
		return &existing, nil
	}
	r.seq++
	session := models.UserSession{
		Identity:     identity,
		CurrentMenu:  "main",
		IsActive:     true,
		LastActivity: time.Now(),
	}
	session.ID = r.seq
	session.CreatedAt = time.Now()
	r.sessions[identity] = session
	return &session, nil
}

func (r *MemorySessionRepo) GetSession(identity string) (*models.UserSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[identity]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *MemorySessionRepo) UpdateSession(identity, currentMenu string, leadFormStep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[identity]
	if !ok {
		r.seq++
		session = models.UserSession{Identity: identity}
		session.ID = r.seq
		session.CreatedAt = time.Now()
	}
	session.CurrentMenu = currentMenu
	session.LeadFormStep = leadFormStep
	session.IsActive = true
	session.LastActivity = time.Now()
	session.UpdatedAt = time.Now()
	r.sessions[identity] = session
	return nil
}

func (r *MemorySessionRepo) DeactivateSession(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[identity]
	if !ok {
		return nil
	}
	session.IsActive = false
	r.sessions[identity] = session
	return nil
}
