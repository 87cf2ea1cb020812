package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&salon).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	salonID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", customerID, salonID).
		First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// findOrCreateCustomer inserts the contact unless the salon already knows
// the phone; the (salon_id, phone) index settles concurrent first bookings
// and the loser re-reads the winner's row.
func findOrCreateCustomer(
	tx *gorm.DB,
	salonID uint,
	contact domain.CustomerContact,
) (*models.Customer, error) {

	customer := models.Customer{
		SalonID: salonID,
		Name:    contact.Name,
		Phone:   contact.Phone,
		Email:   contact.Email,
	}

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "salon_id"}, {Name: "phone"}},
		DoNothing: true,
	}).Create(&customer)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return &customer, nil
	}

	customer = models.Customer{}
	if err := tx.Where("salon_id = ? AND phone = ?", salonID, contact.Phone).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	salonID uint,
	date string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Staff").
		Preload("Service").
		Where("salon_id = ? AND appointment_date = ?", salonID, date).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Staff").
		Preload("Service").
		Where("salon_id = ?", f.SalonID)

	if f.From != "" {
		q = q.Where("appointment_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("appointment_date <= ?", f.To)
	}
	if f.StaffID != 0 {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	apps := []models.Appointment{}
	if err := q.
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Staff").
		Preload("Service").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, translate(err)
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return book(tx, ap)
	})

	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) CreateAppointmentForContact(
	ctx context.Context,
	ap *models.Appointment,
	contact domain.CustomerContact,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := findOrCreateCustomer(tx, ap.SalonID, contact)
		if err != nil {
			return err
		}
		ap.CustomerID = customer.ID
		return book(tx, ap)
	})

	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

// book locks the slot, inserts the appointment and bumps the customer's
// visit counters. It must run inside a transaction.
func book(tx *gorm.DB, ap *models.Appointment) error {
	var taken []models.Appointment
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			ap.StaffID, ap.AppointmentDate, ap.AppointmentTime, string(domain.StatusCancelled),
		).
		Find(&taken).Error; err != nil {
		return err
	}

	if len(taken) > 0 {
		return domain.ErrSlotTaken
	}

	if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
		return err
	}

	var customer models.Customer
	if err := tx.First(&customer, ap.CustomerID).Error; err != nil {
		return err
	}

	lastVisit := customer.LastVisitDate
	if ap.AppointmentDate > lastVisit {
		lastVisit = ap.AppointmentDate
	}

	return tx.Model(&models.Customer{}).
		Where("id = ?", ap.CustomerID).
		Updates(map[string]any{
			"visit_count":     gorm.Expr("visit_count + 1"),
			"last_visit_date": lastVisit,
		}).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error

	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// isUniqueViolation covers translated gorm errors as well as raw
// postgres unique (23505) and exclusion (23P01) violations.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
