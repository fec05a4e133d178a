package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/repository"
	"go.uber.org/zap"
)

// ReportStats is the payload of the report-summary message
type ReportStats struct {
	TotalMembers     int
	TotalCollection  int64
	PendingApprovals int
}

// Notifier is the outbound side channel fired on key transitions. Calls are
// best-effort: implementations log failures and never return them.
type Notifier interface {
	NotifyNewMember(ctx context.Context, member *models.Member)
	NotifyPaymentRequest(ctx context.Context, payment *models.Payment, member *models.Member)
	NotifyPaymentVerified(ctx context.Context, payment *models.Payment, member *models.Member)
	NotifyReportSummary(ctx context.Context, stats ReportStats)
}

// TelegramNotifier sends messages through the Telegram bot API using the
// credentials stored in the app settings. Settings are re-read on every send
// so toggling notifications takes effect without a restart.
type TelegramNotifier struct {
	repo   repository.Repository
	client *http.Client
	logger *zap.Logger

	// baseURL is overridable for tests
	baseURL string
}

// NewTelegramNotifier creates a Telegram-backed notifier
func NewTelegramNotifier(repo repository.Repository, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		repo:    repo,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		baseURL: "https://api.telegram.org",
	}
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) {
	settings, err := n.repo.GetSettings(ctx)
	if err != nil {
		n.logger.Warn("telegram: failed to load settings", zap.Error(err))
		return
	}

	if !settings.EnableNotifications || settings.TelegramBotToken == "" || settings.TelegramChatID == "" {
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, settings.TelegramBotToken)
	body, err := json.Marshal(map[string]string{
		"chat_id":    settings.TelegramChatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		n.logger.Warn("telegram: failed to encode message", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("telegram: failed to build request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("telegram: notification failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("telegram: api responded with error", zap.Int("status", resp.StatusCode))
	}
}

func (n *TelegramNotifier) NotifyNewMember(ctx context.Context, member *models.Member) {
	msg := fmt.Sprintf("👤 <b>New Member Registered</b>\n\n"+
		"<b>Name:</b> %s\n"+
		"<b>ID:</b> %s\n"+
		"<b>Mobile:</b> %s\n"+
		"<b>Joined:</b> %s\n"+
		"<b>Installment:</b> ৳%d",
		member.NameEn, member.MemberID, member.Mobile,
		member.JoinedDate.Format("02/01/2006"), member.FixedAmount)
	n.sendMessage(ctx, msg)
}

func (n *TelegramNotifier) NotifyPaymentRequest(ctx context.Context, payment *models.Payment, member *models.Member) {
	name := "N/A"
	if member != nil {
		name = member.NameEn
	}
	msg := fmt.Sprintf("💰 <b>New Payment Request</b>\n\n"+
		"<b>Member:</b> %s (%s)\n"+
		"<b>Amount:</b> ৳%d\n"+
		"<b>Fine:</b> ৳%d\n"+
		"<b>Total:</b> ৳%d\n"+
		"<b>Method:</b> %s\n"+
		"<b>Sender:</b> %s\n"+
		"<b>TrxID:</b> <code>%s</code>\n\n"+
		"<i>Action: Please verify from Admin Panel.</i>",
		name, payment.MemberID, payment.Amount, payment.FineAmount,
		payment.TotalPaid, payment.MethodName, payment.SenderNumber,
		payment.TransactionID)
	n.sendMessage(ctx, msg)
}

func (n *TelegramNotifier) NotifyPaymentVerified(ctx context.Context, payment *models.Payment, member *models.Member) {
	name := "N/A"
	if member != nil {
		name = member.NameEn
	}
	msg := fmt.Sprintf("✅ <b>Payment Verified</b>\n\n"+
		"<b>Member:</b> %s (%s)\n"+
		"<b>Amount:</b> ৳%d\n"+
		"<b>Date:</b> %s\n"+
		"<b>Status:</b> Success / Verified",
		name, payment.MemberID, payment.TotalPaid, payment.Date.Format("02/01/2006"))
	n.sendMessage(ctx, msg)
}

func (n *TelegramNotifier) NotifyReportSummary(ctx context.Context, stats ReportStats) {
	msg := fmt.Sprintf("📊 <b>System Report Summary</b>\n\n"+
		"<b>Active Members:</b> %d\n"+
		"<b>Total Savings:</b> ৳%d\n"+
		"<b>Pending Approvals:</b> %d\n\n"+
		"<i>Report Generated: %s</i>",
		stats.TotalMembers, stats.TotalCollection, stats.PendingApprovals,
		time.Now().Format("02/01/2006 15:04"))
	n.sendMessage(ctx, msg)
}
