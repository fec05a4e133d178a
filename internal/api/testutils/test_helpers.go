package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sanchaypro/sanchay-server/internal/api"
	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/notify"
	"github.com/sanchaypro/sanchay-server/internal/repository"
	"github.com/sanchaypro/sanchay-server/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository *repository.MemoryRepository
	Service    service.Service
	JWTSecret  []byte

	// Admin seeded with password "admin123"
	Admin    *models.Member
	AdminJWT string

	// Regular member seeded with password "member123"
	Member    *models.Member
	MemberJWT string
}

// nopNotifier drops every notification; API tests assert on HTTP behavior only
type nopNotifier struct{}

func (nopNotifier) NotifyNewMember(context.Context, *models.Member)                        {}
func (nopNotifier) NotifyPaymentRequest(context.Context, *models.Payment, *models.Member)  {}
func (nopNotifier) NotifyPaymentVerified(context.Context, *models.Payment, *models.Member) {}
func (nopNotifier) NotifyReportSummary(context.Context, notify.ReportStats)                {}

// SetupTestContext wires the full router over an in-memory store with one
// admin and one regular member already present
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, nopNotifier{}, zap.NewNop(), testJWTSecret)

	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	admin := SeedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, 0)
	member := SeedMember(t, repo, "A001", "01712345678", "member123", models.RoleMember, 500)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		JWTSecret:  []byte(testJWTSecret),
		Admin:      admin,
		AdminJWT:   SignToken(t, admin),
		Member:     member,
		MemberJWT:  SignToken(t, member),
	}
}

// SeedMember inserts a member directly into the store with a hashed password
func SeedMember(t *testing.T, repo repository.Repository, memberID, mobile, password string, role models.Role, fixedAmount int64) *models.Member {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	member := &models.Member{
		MemberID:    memberID,
		NameEn:      "Test " + memberID,
		NameBn:      "সদস্য " + memberID,
		Mobile:      mobile,
		PaymentType: models.PaymentWeekly,
		FixedAmount: fixedAmount,
		Role:        role,
		Status:      models.MemberActive,
		Password:    string(hashed),
		JoinedDate:  time.Now().UTC(),
	}

	err = repo.CreateMember(context.Background(), member)
	assert.NoError(t, err)
	return member
}

// SignToken issues a session token for a member, matching what login returns
func SignToken(t *testing.T, member *models.Member) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  member.ID,
		"mid":  member.MemberID,
		"role": string(member.Role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err, "Failed to generate JWT token")
	return signed
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
