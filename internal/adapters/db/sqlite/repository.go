package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/seinn09/digforweb/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type CaseRepository struct {
	db *gorm.DB
}

func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// translate keeps gorm out of the layers above. Callers see the domain
// sentinel, not gorm.ErrRecordNotFound.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// isUniqueViolation matches the modernc driver's constraint message; gorm's
// error translation only recognizes mattn/go-sqlite3 errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *CaseRepository) CreateUser(ctx context.Context, value domain.User) (domain.User, error) {
	m := UserModel{
		Name:         value.Name,
		Email:        strings.ToLower(strings.TrimSpace(value.Email)),
		PasswordHash: value.PasswordHash,
		Role:         value.Role,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.Invalid("email", "is already registered")
		}
		return domain.User{}, err
	}
	return userFromModel(m), nil
}

func (r *CaseRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error
	return count, err
}

func (r *CaseRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		return domain.User{}, translate(err)
	}
	return userFromModel(m), nil
}

func (r *CaseRepository) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.User{}, translate(err)
	}
	return userFromModel(m), nil
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *CaseRepository) CreateSession(ctx context.Context, value domain.AuthSession) (domain.AuthSession, error) {
	m := SessionModel{UserID: value.UserID, TokenHash: value.TokenHash, ExpiresAt: value.ExpiresAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.AuthSession{}, err
	}
	return domain.AuthSession{ID: m.ID, UserID: m.UserID, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func (r *CaseRepository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.AuthSession, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&m).Error; err != nil {
		return domain.AuthSession{}, translate(err)
	}
	return domain.AuthSession{ID: m.ID, UserID: m.UserID, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func (r *CaseRepository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&SessionModel{}).Error
}

func (r *CaseRepository) CreateAPIToken(ctx context.Context, value domain.APIToken) (domain.APIToken, error) {
	m := APITokenModel{UserID: value.UserID, Name: value.Name, TokenHash: value.TokenHash, ExpiresAt: value.ExpiresAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.APIToken{}, err
	}
	return domain.APIToken{ID: m.ID, UserID: m.UserID, Name: m.Name, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func (r *CaseRepository) GetAPITokenByTokenHash(ctx context.Context, tokenHash string) (domain.APIToken, error) {
	var m APITokenModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&m).Error; err != nil {
		return domain.APIToken{}, translate(err)
	}
	return domain.APIToken{ID: m.ID, UserID: m.UserID, Name: m.Name, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func (r *CaseRepository) DeleteAPITokenByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&APITokenModel{}).Error
}

func (r *CaseRepository) ListVictims(ctx context.Context) ([]domain.Victim, error) {
	rows := make([]VictimModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Victim, 0, len(rows))
	for _, m := range rows {
		result = append(result, victimFromModel(m))
	}
	return result, nil
}

func (r *CaseRepository) GetVictimByID(ctx context.Context, id uint) (domain.Victim, error) {
	var m VictimModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Victim{}, translate(err)
	}
	return victimFromModel(m), nil
}

func (r *CaseRepository) CreateVictim(ctx context.Context, value domain.Victim) (domain.Victim, error) {
	m := VictimModel{
		Name:              value.Name,
		Contact:           value.Contact,
		Location:          value.Location,
		ReportDate:        value.ReportDate,
		ReportDescription: value.ReportDescription,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Victim{}, err
	}
	return victimFromModel(m), nil
}

func (r *CaseRepository) UpdateVictim(ctx context.Context, value domain.Victim) (domain.Victim, error) {
	updates := map[string]any{
		"name":               value.Name,
		"contact":            value.Contact,
		"location":           value.Location,
		"report_date":        value.ReportDate,
		"report_description": value.ReportDescription,
		"updated_at":         time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Model(&VictimModel{}).Where("id = ?", value.ID).Updates(updates).Error; err != nil {
		return domain.Victim{}, err
	}
	return r.GetVictimByID(ctx, value.ID)
}

func victimFromModel(m VictimModel) domain.Victim {
	return domain.Victim{
		ID:                m.ID,
		Name:              m.Name,
		Contact:           m.Contact,
		Location:          m.Location,
		ReportDate:        m.ReportDate,
		ReportDescription: m.ReportDescription,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *CaseRepository) ListCases(ctx context.Context) ([]domain.Case, error) {
	rows := make([]CaseModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Case, 0, len(rows))
	for _, m := range rows {
		result = append(result, caseFromModel(m))
	}
	return result, nil
}

func (r *CaseRepository) GetCaseByID(ctx context.Context, id uint) (domain.Case, error) {
	var m CaseModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Case{}, translate(err)
	}
	return caseFromModel(m), nil
}

func (r *CaseRepository) CreateCase(ctx context.Context, value domain.Case) (domain.Case, error) {
	m := CaseModel{
		VictimID:     value.VictimID,
		CaseType:     value.CaseType,
		IncidentDate: value.IncidentDate,
		Summary:      value.Summary,
		Status:       defaultString(value.Status, "pending"),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Case{}, err
	}
	return caseFromModel(m), nil
}

func (r *CaseRepository) UpdateCase(ctx context.Context, value domain.Case) (domain.Case, error) {
	updates := map[string]any{
		"victim_id":     value.VictimID,
		"case_type":     value.CaseType,
		"incident_date": value.IncidentDate,
		"summary":       value.Summary,
		"status":        defaultString(value.Status, "pending"),
		"updated_at":    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Model(&CaseModel{}).Where("id = ?", value.ID).Updates(updates).Error; err != nil {
		return domain.Case{}, err
	}
	return r.GetCaseByID(ctx, value.ID)
}

func caseFromModel(m CaseModel) domain.Case {
	return domain.Case{
		ID:           m.ID,
		VictimID:     m.VictimID,
		CaseType:     m.CaseType,
		IncidentDate: m.IncidentDate,
		Summary:      m.Summary,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *CaseRepository) ListEvidence(ctx context.Context) ([]domain.Evidence, error) {
	rows := make([]EvidenceModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Evidence, 0, len(rows))
	for _, m := range rows {
		result = append(result, evidenceFromModel(m))
	}
	return result, nil
}

func (r *CaseRepository) GetEvidenceByID(ctx context.Context, id uint) (domain.Evidence, error) {
	var m EvidenceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Evidence{}, translate(err)
	}
	return evidenceFromModel(m), nil
}

func (r *CaseRepository) CreateEvidence(ctx context.Context, value domain.Evidence) (domain.Evidence, error) {
	m := EvidenceModel{
		CaseID:          value.CaseID,
		EvidenceType:    value.EvidenceType,
		StorageLocation: value.StorageLocation,
		HashValue:       value.HashValue,
		CollectionTime:  value.CollectionTime,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Evidence{}, err
	}
	return evidenceFromModel(m), nil
}

func (r *CaseRepository) UpdateEvidence(ctx context.Context, value domain.Evidence) (domain.Evidence, error) {
	updates := map[string]any{
		"case_id":          value.CaseID,
		"evidence_type":    value.EvidenceType,
		"storage_location": value.StorageLocation,
		"hash_value":       value.HashValue,
		"collection_time":  value.CollectionTime,
		"updated_at":       time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Model(&EvidenceModel{}).Where("id = ?", value.ID).Updates(updates).Error; err != nil {
		return domain.Evidence{}, err
	}
	return r.GetEvidenceByID(ctx, value.ID)
}

func (r *CaseRepository) DeleteEvidenceByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&EvidenceModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func evidenceFromModel(m EvidenceModel) domain.Evidence {
	return domain.Evidence{
		ID:              m.ID,
		CaseID:          m.CaseID,
		EvidenceType:    m.EvidenceType,
		StorageLocation: m.StorageLocation,
		HashValue:       m.HashValue,
		CollectionTime:  m.CollectionTime,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *CaseRepository) ListActions(ctx context.Context) ([]domain.ForensicAction, error) {
	rows := make([]ForensicActionModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ForensicAction, 0, len(rows))
	for _, m := range rows {
		result = append(result, actionFromModel(m))
	}
	return result, nil
}

func (r *CaseRepository) GetActionByID(ctx context.Context, id uint) (domain.ForensicAction, error) {
	var m ForensicActionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.ForensicAction{}, translate(err)
	}
	return actionFromModel(m), nil
}

func (r *CaseRepository) CreateAction(ctx context.Context, value domain.ForensicAction) (domain.ForensicAction, error) {
	m := ForensicActionModel{
		CaseID:         value.CaseID,
		Stage:          value.Stage,
		Description:    value.Description,
		PersonInCharge: value.PersonInCharge,
		ExecutionTime:  value.ExecutionTime,
		Status:         defaultString(value.Status, "pending"),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.ForensicAction{}, err
	}
	return actionFromModel(m), nil
}

func (r *CaseRepository) UpdateAction(ctx context.Context, value domain.ForensicAction) (domain.ForensicAction, error) {
	updates := map[string]any{
		"case_id":          value.CaseID,
		"stage":            value.Stage,
		"description":      value.Description,
		"person_in_charge": value.PersonInCharge,
		"execution_time":   value.ExecutionTime,
		"status":           defaultString(value.Status, "pending"),
		"updated_at":       time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Model(&ForensicActionModel{}).Where("id = ?", value.ID).Updates(updates).Error; err != nil {
		return domain.ForensicAction{}, err
	}
	return r.GetActionByID(ctx, value.ID)
}

func (r *CaseRepository) DeleteActionByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ForensicActionModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func actionFromModel(m ForensicActionModel) domain.ForensicAction {
	return domain.ForensicAction{
		ID:             m.ID,
		CaseID:         m.CaseID,
		Stage:          m.Stage,
		Description:    m.Description,
		PersonInCharge: m.PersonInCharge,
		ExecutionTime:  m.ExecutionTime,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Snapshot loads the id/FK projection of all four collections so the
// cascade planner can work without further queries.
func (r *CaseRepository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	victims := make([]VictimModel, 0)
	if err := r.db.WithContext(ctx).Find(&victims).Error; err != nil {
		return domain.Snapshot{}, err
	}
	for _, m := range victims {
		snap.Victims = append(snap.Victims, victimFromModel(m))
	}

	cases := make([]CaseModel, 0)
	if err := r.db.WithContext(ctx).Find(&cases).Error; err != nil {
		return domain.Snapshot{}, err
	}
	for _, m := range cases {
		snap.Cases = append(snap.Cases, caseFromModel(m))
	}

	evidence := make([]EvidenceModel, 0)
	if err := r.db.WithContext(ctx).Find(&evidence).Error; err != nil {
		return domain.Snapshot{}, err
	}
	for _, m := range evidence {
		snap.Evidence = append(snap.Evidence, evidenceFromModel(m))
	}

	actions := make([]ForensicActionModel, 0)
	if err := r.db.WithContext(ctx).Find(&actions).Error; err != nil {
		return domain.Snapshot{}, err
	}
	for _, m := range actions {
		snap.Actions = append(snap.Actions, actionFromModel(m))
	}

	return snap, nil
}

// DeleteCascade removes a planned set in one transaction, children first.
func (r *CaseRepository) DeleteCascade(ctx context.Context, plan domain.CascadePlan) error {
	if plan.Empty() {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(plan.ActionIDs) > 0 {
			if err := tx.Delete(&ForensicActionModel{}, plan.ActionIDs).Error; err != nil {
				return err
			}
		}
		if len(plan.EvidenceIDs) > 0 {
			if err := tx.Delete(&EvidenceModel{}, plan.EvidenceIDs).Error; err != nil {
				return err
			}
		}
		if len(plan.CaseIDs) > 0 {
			if err := tx.Delete(&CaseModel{}, plan.CaseIDs).Error; err != nil {
				return err
			}
		}
		if len(plan.VictimIDs) > 0 {
			if err := tx.Delete(&VictimModel{}, plan.VictimIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CaseRepository) CountStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.WithContext(ctx).Model(&VictimModel{}).Count(&stats.Victims).Error; err != nil {
		return domain.Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&CaseModel{}).Count(&stats.Cases).Error; err != nil {
		return domain.Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&EvidenceModel{}).Count(&stats.Evidence).Error; err != nil {
		return domain.Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&ForensicActionModel{}).Count(&stats.Actions).Error; err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (r *CaseRepository) CreateAuditLog(ctx context.Context, value domain.AuditLog) error {
	m := AuditLogModel{ActorUserID: value.ActorUserID, Action: value.Action, TargetType: value.TargetType, TargetID: value.TargetID, Metadata: value.Metadata}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *CaseRepository) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	type row struct {
		ID             uint
		ActorUserID    *uint
		ActorUserEmail string
		Action         string
		TargetType     string
		TargetID       *uint
		Metadata       string
		CreatedAt      time.Time
	}
	rows := make([]row, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT a.id,
       a.actor_user_id,
       COALESCE(u.email, '') AS actor_user_email,
       a.action,
       a.target_type,
       a.target_id,
       a.metadata,
       a.created_at
FROM audit_logs a
LEFT JOIN users u ON u.id = a.actor_user_id
ORDER BY a.id DESC
LIMIT ?
`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.AuditRecord, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.AuditRecord{
			ID:             m.ID,
			ActorUserID:    m.ActorUserID,
			ActorUserEmail: m.ActorUserEmail,
			Action:         m.Action,
			TargetType:     m.TargetType,
			TargetID:       m.TargetID,
			Metadata:       m.Metadata,
			CreatedAt:      m.CreatedAt,
		})
	}
	return result, nil
}

func defaultString(input, fallback string) string {
	if strings.TrimSpace(input) == "" {
		return fallback
	}

	return input
}
