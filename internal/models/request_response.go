package models

// Request models
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // memberId or mobile
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type CreateMemberRequest struct {
	MemberID    string      `json:"memberId" binding:"required"`
	NameEn      string      `json:"nameEn" binding:"required"`
	NameBn      string      `json:"nameBn" binding:"required"`
	Mobile      string      `json:"mobile" binding:"required"`
	Address     string      `json:"address"`
	NidURL      string      `json:"nidUrl"`
	PhotoURL    string      `json:"photoUrl"`
	PaymentType PaymentType `json:"paymentType" binding:"required,oneof=WEEKLY MONTHLY"`
	FixedAmount int64       `json:"fixedAmount" binding:"min=0"`
	Role        Role        `json:"role" binding:"required,oneof=MAIN_ADMIN ADMIN MEMBER"`
	Password    string      `json:"password" binding:"required,min=4"`
}

type UpdateMemberRequest struct {
	NameEn      string       `json:"nameEn"`
	NameBn      string       `json:"nameBn"`
	Mobile      string       `json:"mobile"`
	Address     string       `json:"address"`
	NidURL      string       `json:"nidUrl"`
	PhotoURL    string       `json:"photoUrl"`
	PaymentType PaymentType  `json:"paymentType" binding:"omitempty,oneof=WEEKLY MONTHLY"`
	FixedAmount *int64       `json:"fixedAmount"`
	Role        Role         `json:"role" binding:"omitempty,oneof=MAIN_ADMIN ADMIN MEMBER"`
	Status      MemberStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SubmitPaymentRequest is a member's own payment submission
type SubmitPaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	MethodID      string `json:"methodId" binding:"required"`
	SenderNumber  string `json:"senderNumber" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// RecordPaymentRequest is a direct admin payment entry
type RecordPaymentRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Remarks  string `json:"remarks"`
}

type CreateMethodRequest struct {
	Name         string `json:"name" binding:"required"`
	Number       string `json:"number" binding:"required"`
	Instructions string `json:"instructions"`
}

type CreateNoticeRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	PhotoURL string `json:"photoUrl"`
}

type SaveSettingsRequest struct {
	AppName             string `json:"appName" binding:"required"`
	LogoURL             string `json:"logoUrl"`
	EnableNotifications bool   `json:"enableNotifications"`
	TelegramBotToken    string `json:"telegramBotToken"`
	TelegramChatID      string `json:"telegramChatId"`
}

// Response models
type LoginResponse struct {
	Status    string  `json:"status"`
	Token     string  `json:"token"`
	ExpiresIn int     `json:"expiresIn"`
	Member    *Member `json:"member"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MemberSummary is a member's own balance view
type MemberSummary struct {
	Status         string   `json:"status"`
	MemberID       string   `json:"memberId"`
	TotalDeposited int64    `json:"totalDeposited"`
	LastPayment    *Payment `json:"lastPayment,omitempty"`
}

// DashboardSummary backs the admin dashboard
type DashboardSummary struct {
	Status            string    `json:"status"`
	ActiveMembers     int       `json:"activeMembers"`
	TodayCollection   int64     `json:"todayCollection"`
	MonthlyCollection int64     `json:"monthlyCollection"`
	PendingApprovals  int       `json:"pendingApprovals"`
	RecentPayments    []Payment `json:"recentPayments"`
}

// MemberBalance is one row of the per-member balances report
type MemberBalance struct {
	MemberID string `json:"memberId"`
	NameEn   string `json:"nameEn"`
	NameBn   string `json:"nameBn"`
	Balance  int64  `json:"balance"`
}

// ReportSummary is the society-wide report
type ReportSummary struct {
	Status           string          `json:"status"`
	TotalMembers     int             `json:"totalMembers"`
	TotalCollection  int64           `json:"totalCollection"`
	PendingApprovals int             `json:"pendingApprovals"`
	Balances         []MemberBalance `json:"balances"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
