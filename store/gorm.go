package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ClientModel is the client table row
type ClientModel struct {
	ID         string           `gorm:"column:id;type:varchar(128);primaryKey"`
	KycStatus  string           `gorm:"column:kyc_status;type:varchar(16);not null"`
	CreatedOn  time.Time        `gorm:"column:created_on;not null"`
	UpdatedOn  time.Time        `gorm:"column:updated_on;not null;index"`
	KycDetails []KycDetailModel `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ClientModel) TableName() string {
	return "client"
}

// KycDetailModel is the kyc_details table row, ordered by Position within a client
type KycDetailModel struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID     string `gorm:"column:client_id;type:varchar(128);not null;index"`
	Position     int    `gorm:"column:position;not null"`
	DocumentType string `gorm:"column:document_type;type:varchar(32)"`
	DocumentID   string `gorm:"column:document_id"`
	FullName     string `gorm:"column:full_name"`
	DateOfBirth  string `gorm:"column:date_of_birth"`
	Gender       string `gorm:"column:gender"`
	Address      string `gorm:"column:address"`
}

func (KycDetailModel) TableName() string {
	return "kyc_details"
}

// LeadModel is the lead table row
type LeadModel struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	FirstName     string `gorm:"column:first_name"`
	LastName      string `gorm:"column:last_name"`
	Company       string `gorm:"column:company"`
	Title         string `gorm:"column:title"`
	Type          string `gorm:"column:type"`
	Source        string `gorm:"column:source"`
	Status        string `gorm:"column:status;index"`
	ContactNumber string `gorm:"column:contact_number;index"`
}

func (LeadModel) TableName() string {
	return "lead"
}

func fromClientDomain(c *model.Client) *ClientModel {
	m := &ClientModel{
		ID:        c.ID,
		KycStatus: string(c.KycStatus),
		CreatedOn: c.CreatedDate.Time,
		UpdatedOn: c.LastModifiedDate.Time,
	}
	for i, k := range c.KycDetails {
		m.KycDetails = append(m.KycDetails, KycDetailModel{
			ClientID:     c.ID,
			Position:     i,
			DocumentType: string(k.DocumentType),
			DocumentID:   k.DocumentID,
			FullName:     k.FullName,
			DateOfBirth:  k.DateOfBirth,
			Gender:       k.Gender,
			Address:      k.Address,
		})
	}
	return m
}

func (m *ClientModel) toDomain() *model.Client {
	c := &model.Client{
		ID:               m.ID,
		KycDetails:       make([]model.KycDetail, 0, len(m.KycDetails)),
		KycStatus:        model.KycStatus(m.KycStatus),
		CreatedDate:      model.NewTimestamp(m.CreatedOn),
		LastModifiedDate: model.NewTimestamp(m.UpdatedOn),
	}
	for _, k := range m.KycDetails {
		c.KycDetails = append(c.KycDetails, model.KycDetail{
			DocumentType: model.DocumentType(k.DocumentType),
			DocumentID:   k.DocumentID,
			FullName:     k.FullName,
			DateOfBirth:  k.DateOfBirth,
			Gender:       k.Gender,
			Address:      k.Address,
		})
	}
	return c
}

func fromLeadDomain(l *model.Lead) *LeadModel {
	return &LeadModel{
		ID:            l.ID,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		Company:       l.Company,
		Title:         l.Title,
		Type:          l.Type,
		Source:        l.Source,
		Status:        l.Status,
		ContactNumber: l.ContactNumber,
	}
}

func (m *LeadModel) toDomain() *model.Lead {
	return &model.Lead{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Company:       m.Company,
		Title:         m.Title,
		Type:          m.Type,
		Source:        m.Source,
		Status:        m.Status,
		ContactNumber: m.ContactNumber,
	}
}

type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenPostgres connects to Postgres and migrates the schema
func OpenPostgres(ctx context.Context, dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}
	return NewGormStore(ctx, db)
}

// NewGormStore returns the store backed by a SQL database,
// the tables are created or migrated.
func NewGormStore(ctx context.Context, db *gorm.DB) (Store, error) {
	err := db.WithContext(ctx).AutoMigrate(&ClientModel{}, &KycDetailModel{}, &LeadModel{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}
	return &gormStore{db: db, now: time.Now}, nil
}

func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("KycDetails", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (s *gormStore) GetClient(ctx context.Context, id string) (*model.Client, error) {
	var m ClientModel
	err := preloadDetails(s.db.WithContext(ctx)).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clientNotFound(id)
		}
		return nil, errors.Wrap(err, "failed to get client")
	}
	return m.toDomain(), nil
}

func (s *gormStore) ListClients(ctx context.Context) ([]*model.Client, error) {
	var rows []ClientModel
	err := preloadDetails(s.db.WithContext(ctx)).Order("updated_on desc, id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}
	list := make([]*model.Client, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toDomain())
	}
	return list, nil
}

func (s *gormStore) UpsertClient(ctx context.Context, c *model.Client) (*model.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	rec := c.Clone()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev ClientModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&prev, "id = ?", rec.ID).Error
		switch {
		case err == nil:
			stampClient(rec, prev.toDomain(), s.now())
		case errors.Is(err, gorm.ErrRecordNotFound):
			stampClient(rec, nil, s.now())
		default:
			return errors.Wrap(err, "failed to read client")
		}

		row := fromClientDomain(rec)
		details := row.KycDetails
		row.KycDetails = nil

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kyc_status", "updated_on"}),
		}).Create(row).Error
		if err != nil {
			return errors.Wrap(err, "failed to save client")
		}
		if err = tx.Where("client_id = ?", rec.ID).Delete(&KycDetailModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to replace KYC details")
		}
		if len(details) > 0 {
			if err = tx.Create(&details).Error; err != nil {
				return errors.Wrap(err, "failed to save KYC details")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (s *gormStore) GetLead(ctx context.Context, id int64) (*model.Lead, error) {
	var m LeadModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leadNotFound(id)
		}
		return nil, errors.Wrap(err, "failed to get lead")
	}
	return m.toDomain(), nil
}

func (s *gormStore) FindLeadByContactNumber(ctx context.Context, contactNumber string) (*model.Lead, error) {
	var m LeadModel
	err := s.db.WithContext(ctx).
		Where("contact_number = ?", contactNumber).
		Order("id").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leadContactNotFound(contactNumber)
		}
		return nil, errors.Wrap(err, "failed to find lead")
	}
	return m.toDomain(), nil
}

func (s *gormStore) ListLeadsByStatus(ctx context.Context, status string) ([]*model.Lead, error) {
	var rows []LeadModel
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list leads")
	}
	list := make([]*model.Lead, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toDomain())
	}
	return list, nil
}

func (s *gormStore) UpsertLead(ctx context.Context, l *model.Lead) (*model.Lead, error) {
	if err := validateLead(l); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(fromLeadDomain(l)).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to save lead")
	}
	return l.Clone(), nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return sqlDB.Close()
}
