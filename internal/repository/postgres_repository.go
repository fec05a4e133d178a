package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sanchaypro/sanchay-server/internal/models"
)

// settingsRowID keys the single persisted settings row
const settingsRowID = "app_config"

// Repository is the ledger store boundary. Implementations must return
// (nil, nil) for single-record reads that find nothing; the service layer
// turns that into its NotFound error.
type Repository interface {
	// Member operations
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)
	CreateMember(ctx context.Context, member *models.Member) error
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id string) error

	// Payment operations. ListPayments returns payments in insertion order.
	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ApprovePayment(ctx context.Context, id, adminID string) (*models.Payment, error)
	RejectPayment(ctx context.Context, id string) error

	// Payment method operations
	ListMethods(ctx context.Context) ([]models.PaymentMethod, error)
	GetMethod(ctx context.Context, id string) (*models.PaymentMethod, error)
	CreateMethod(ctx context.Context, method *models.PaymentMethod) error
	UpdateMethod(ctx context.Context, method *models.PaymentMethod) error
	DeleteMethod(ctx context.Context, id string) error

	// Notice operations. ListNotices returns notices newest first.
	ListNotices(ctx context.Context) ([]models.Notice, error)
	CreateNotice(ctx context.Context, notice *models.Notice) error
	DeleteNotice(ctx context.Context, id string) error

	// Settings operations. GetSettings returns the hard-coded default when
	// nothing is persisted.
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	SaveSettings(ctx context.Context, settings *models.AppSettings) error
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// Member repository methods
func (r *PostgresRepository) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.SelectContext(ctx, &members, `SELECT * FROM members ORDER BY joined_date ASC`)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	query := `SELECT * FROM members WHERE id = $1`

	var member models.Member
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Member not found
		}
		return nil, err
	}

	return &member, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (id, member_id, name_en, name_bn, mobile, address, nid_url, photo_url,
			payment_type, fixed_amount, role, status, password, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	// Generate a new UUID if not provided
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	if member.JoinedDate.IsZero() {
		member.JoinedDate = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.MemberID, member.NameEn, member.NameBn, member.Mobile,
		member.Address, member.NidURL, member.PhotoURL, member.PaymentType,
		member.FixedAmount, member.Role, member.Status, member.Password, member.JoinedDate)

	return err
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *models.Member) error {
	query := `
		UPDATE members
		SET member_id = $2, name_en = $3, name_bn = $4, mobile = $5, address = $6,
			nid_url = $7, photo_url = $8, payment_type = $9, fixed_amount = $10,
			role = $11, status = $12, password = $13
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.MemberID, member.NameEn, member.NameBn, member.Mobile,
		member.Address, member.NidURL, member.PhotoURL, member.PaymentType,
		member.FixedAmount, member.Role, member.Status, member.Password)

	return err
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}

// Payment repository methods
func (r *PostgresRepository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `SELECT * FROM payments ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PostgresRepository) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT * FROM payments WHERE id = $1`

	var payment models.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Payment not found
		}
		return nil, err
	}

	return &payment, nil
}

func (r *PostgresRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, member_id, amount, fine_amount, total_paid, date, status, type,
			admin_id, remarks, transaction_id, sender_number, method_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq
	`

	// Generate a new UUID if not provided
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}

	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	return r.db.QueryRowContext(ctx, query,
		payment.ID, payment.MemberID, payment.Amount, payment.FineAmount,
		payment.TotalPaid, payment.Date, payment.Status, payment.Type,
		payment.AdminID, payment.Remarks, payment.TransactionID,
		payment.SenderNumber, payment.MethodName).Scan(&payment.Seq)
}

// ApprovePayment marks a pending payment verified. The terminal status is
// decided from the fine stored at submission time, never recomputed.
func (r *PostgresRepository) ApprovePayment(ctx context.Context, id, adminID string) (*models.Payment, error) {
	payment, err := r.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment == nil {
		return nil, nil // Payment not found
	}

	status := models.StatusPaid
	if payment.FineAmount > 0 {
		status = models.StatusLate
	}

	query := `UPDATE payments SET status = $2, admin_id = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, adminID); err != nil {
		return nil, err
	}

	payment.Status = status
	payment.AdminID = adminID
	return payment, nil
}

func (r *PostgresRepository) RejectPayment(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

// Payment method repository methods
func (r *PostgresRepository) ListMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.SelectContext(ctx, &methods, `SELECT * FROM methods ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}

	return methods, nil
}

func (r *PostgresRepository) GetMethod(ctx context.Context, id string) (*models.PaymentMethod, error) {
	query := `SELECT * FROM methods WHERE id = $1`

	var method models.PaymentMethod
	err := r.db.GetContext(ctx, &method, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Method not found
		}
		return nil, err
	}

	return &method, nil
}

func (r *PostgresRepository) CreateMethod(ctx context.Context, method *models.PaymentMethod) error {
	query := `INSERT INTO methods (id, name, number, instructions) VALUES ($1, $2, $3, $4)`

	if method.ID == "" {
		method.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, query,
		method.ID, method.Name, method.Number, method.Instructions)

	return err
}

func (r *PostgresRepository) UpdateMethod(ctx context.Context, method *models.PaymentMethod) error {
	query := `UPDATE methods SET name = $2, number = $3, instructions = $4 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		method.ID, method.Name, method.Number, method.Instructions)

	return err
}

func (r *PostgresRepository) DeleteMethod(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM methods WHERE id = $1`, id)
	return err
}

// Notice repository methods
func (r *PostgresRepository) ListNotices(ctx context.Context) ([]models.Notice, error) {
	var notices []models.Notice
	err := r.db.SelectContext(ctx, &notices, `SELECT * FROM notices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	return notices, nil
}

func (r *PostgresRepository) CreateNotice(ctx context.Context, notice *models.Notice) error {
	query := `INSERT INTO notices (id, title, content, photo_url, created_at) VALUES ($1, $2, $3, $4, $5)`

	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}

	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		notice.ID, notice.Title, notice.Content, notice.PhotoURL, notice.CreatedAt)

	return err
}

func (r *PostgresRepository) DeleteNotice(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	return err
}

// Settings repository methods
func (r *PostgresRepository) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	query := `
		SELECT app_name, logo_url, enable_notifications, telegram_bot_token, telegram_chat_id
		FROM settings WHERE id = $1
	`

	var settings models.AppSettings
	err := r.db.GetContext(ctx, &settings, query, settingsRowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		return nil, err
	}

	return &settings, nil
}

func (r *PostgresRepository) SaveSettings(ctx context.Context, settings *models.AppSettings) error {
	query := `
		INSERT INTO settings (id, app_name, logo_url, enable_notifications, telegram_bot_token, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET app_name = EXCLUDED.app_name,
			logo_url = EXCLUDED.logo_url,
			enable_notifications = EXCLUDED.enable_notifications,
			telegram_bot_token = EXCLUDED.telegram_bot_token,
			telegram_chat_id = EXCLUDED.telegram_chat_id
	`

	_, err := r.db.ExecContext(ctx, query,
		settingsRowID, settings.AppName, settings.LogoURL, settings.EnableNotifications,
		settings.TelegramBotToken, settings.TelegramChatID)

	return err
}
