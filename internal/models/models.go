package models

import (
	"time"
)

// Role of a member within the society. MainAdmin and Admin carry the same
// authorization scope; MainAdmin only marks the bootstrap account.
type Role string

const (
	RoleMainAdmin Role = "MAIN_ADMIN"
	RoleAdmin     Role = "ADMIN"
	RoleMember    Role = "MEMBER"
)

// IsAdmin reports whether the role grants administrator access.
func (r Role) IsAdmin() bool {
	return r == RoleMainAdmin || r == RoleAdmin
}

// PaymentType is the member's contribution plan.
type PaymentType string

const (
	PaymentWeekly  PaymentType = "WEEKLY"
	PaymentMonthly PaymentType = "MONTHLY"
)

// PaymentStatus is the lifecycle state of a payment. Rejected payments are
// deleted rather than kept with a status.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
	StatusLate    PaymentStatus = "LATE"
)

// MemberStatus is the lifecycle state of a member.
type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

// Member represents a participant in the society
type Member struct {
	ID          string       `db:"id" json:"id"`
	MemberID    string       `db:"member_id" json:"memberId"` // human-assigned, e.g. "A001"
	NameEn      string       `db:"name_en" json:"nameEn"`
	NameBn      string       `db:"name_bn" json:"nameBn"`
	Mobile      string       `db:"mobile" json:"mobile"`
	Address     string       `db:"address" json:"address"`
	NidURL      string       `db:"nid_url" json:"nidUrl,omitempty"`
	PhotoURL    string       `db:"photo_url" json:"photoUrl,omitempty"`
	PaymentType PaymentType  `db:"payment_type" json:"paymentType"`
	FixedAmount int64        `db:"fixed_amount" json:"fixedAmount"`
	Role        Role         `db:"role" json:"role"`
	Status      MemberStatus `db:"status" json:"status"`
	Password    string       `db:"password" json:"-"` // bcrypt hash, not returned in JSON
	JoinedDate  time.Time    `db:"joined_date" json:"joinedDate"`
}

// Payment represents one contribution event, base amount plus any late fee.
// TotalPaid always equals Amount + FineAmount.
type Payment struct {
	ID            string        `db:"id" json:"id"`
	Seq           int64         `db:"seq" json:"-"` // store insertion order
	MemberID      string        `db:"member_id" json:"memberId"`
	Amount        int64         `db:"amount" json:"amount"`
	FineAmount    int64         `db:"fine_amount" json:"fineAmount"`
	TotalPaid     int64         `db:"total_paid" json:"totalPaid"`
	Date          time.Time     `db:"date" json:"date"`
	Status        PaymentStatus `db:"status" json:"status"`
	Type          PaymentType   `db:"type" json:"type"`
	AdminID       string        `db:"admin_id" json:"adminId,omitempty"` // set when admin-verified
	Remarks       string        `db:"remarks" json:"remarks,omitempty"`
	TransactionID string        `db:"transaction_id" json:"transactionId,omitempty"`
	SenderNumber  string        `db:"sender_number" json:"senderNumber,omitempty"`
	MethodName    string        `db:"method_name" json:"methodName,omitempty"`
}

// PaymentMethod is reference data shown to members for sending money
type PaymentMethod struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Number       string `db:"number" json:"number"`
	Instructions string `db:"instructions" json:"instructions,omitempty"`
}

// Notice is an admin-posted announcement, newest first
type Notice struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	PhotoURL  string    `db:"photo_url" json:"photoUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AppSettings is the singleton application configuration
type AppSettings struct {
	AppName             string `db:"app_name" json:"appName"`
	LogoURL             string `db:"logo_url" json:"logoUrl"`
	EnableNotifications bool   `db:"enable_notifications" json:"enableNotifications"`
	TelegramBotToken    string `db:"telegram_bot_token" json:"telegramBotToken,omitempty"`
	TelegramChatID      string `db:"telegram_chat_id" json:"telegramChatId,omitempty"`
}

// DefaultSettings returns the hard-coded settings used when none are persisted
func DefaultSettings() *AppSettings {
	return &AppSettings{
		AppName:             "সঞ্চয় প্রো",
		LogoURL:             "https://cdn-icons-png.flaticon.com/512/3258/3258446.png",
		EnableNotifications: false,
	}
}
