package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quotabot/models"
)

// GormUserRepo implements UserRepository on a gorm connection.
type GormUserRepo struct {
	db *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{db: db}
}

func (r *GormUserRepo) UpsertUser(identity, pushName string) (*models.User, error) {
	user := models.User{
		Identity:   identity,
		PushName:   pushName,
		LastSeenAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoUpdates: clause.AssignmentColumns([]string{"push_name", "last_seen_at", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepo) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("last_seen_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GormLeadRepo implements LeadRepository on a gorm connection.
type GormLeadRepo struct {
	db *gorm.DB
}

func NewGormLeadRepo(db *gorm.DB) *GormLeadRepo {
	return &GormLeadRepo{db: db}
}

func (r *GormLeadRepo) CreateLead(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *GormLeadRepo) GetLeads(status string) ([]models.Lead, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *GormLeadRepo) GetLeadsByIdentity(identity string) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Where("identity = ?", identity).Order("created_at DESC").Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *GormLeadRepo) UpdateLeadStatus(id uint, status string) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.Model(&lead).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// GormMessageRepo implements MessageRepository on a gorm connection.
type GormMessageRepo struct {
	db *gorm.DB
}

func NewGormMessageRepo(db *gorm.DB) *GormMessageRepo {
	return &GormMessageRepo{db: db}
}

func (r *GormMessageRepo) CreateMessage(msg *models.BotMessage) error {
	return r.db.Create(msg).Error
}

func (r *GormMessageRepo) GetMessages(identity string, limit int) ([]models.BotMessage, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	var messages []models.BotMessage
	err := r.db.Where("identity = ?", identity).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GormSessionRepo implements SessionRepository on a gorm connection.
type GormSessionRepo struct {
	db *gorm.DB
}

func NewGormSessionRepo(db *gorm.DB) *GormSessionRepo {
	return &GormSessionRepo{db: db}
}

func (r *GormSessionRepo) CreateSession(identity string) (*models.UserSession, error) {
	session := models.UserSession{
		Identity:     identity,
		CurrentMenu:  "main",
		IsActive:     true,
		LastActivity: time.Now(),
	}
	err := r.db.Where(models.UserSession{Identity: identity}).FirstOrCreate(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepo) GetSession(identity string) (*models.UserSession, error) {
	var session models.UserSession
	err := r.db.Where("identity = ?", identity).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepo) UpdateSession(identity, currentMenu string, leadFormStep int) error {
	updates := map[string]interface{}{
		"current_menu":   currentMenu,
		"lead_form_step": leadFormStep,
		"is_active":      true,
		"last_activity":  time.Now(),
	}
	result := r.db.Model(&models.UserSession{}).Where("identity = ?", identity).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		session := models.UserSession{
			Identity:     identity,
			CurrentMenu:  currentMenu,
			LeadFormStep: leadFormStep,
			IsActive:     true,
			LastActivity: time.Now(),
		}
		return r.db.Create(&session).Error
	}
	return nil
}

func (r *GormSessionRepo) DeactivateSession(identity string) error {
	return r.db.Model(&models.UserSession{}).
		Where("identity = ?", identity).
		Update("is_active", false).Error
}
