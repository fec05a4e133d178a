package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/api/testutils"
	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/stretchr/testify/assert"
)

// Concurrent submissions from the same member must all land as independent
// pending records
func TestConcurrentSubmissions(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	const workers = 10
	var wg sync.WaitGroup
	codes := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				"/api/payments",
				models.SubmitPaymentRequest{
					Amount:        500,
					MethodID:      "any",
					SenderNumber:  "01712345678",
					TransactionID: fmt.Sprintf("TX-%d", i),
				},
				testutils.AuthHeaders(testCtx.MemberJWT),
			)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/payments/pending",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	var pending []models.Payment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Len(t, pending, workers)
}

// Racing approvals of one payment must leave a single record in a terminal
// state with an admin attached
func TestConcurrentApprovals(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	payment := &models.Payment{
		MemberID:   "A001",
		Amount:     500,
		FineAmount: 50,
		TotalPaid:  550,
		Date:       time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusPending,
		Type:       models.PaymentWeekly,
	}
	assert.NoError(t, testCtx.Repository.CreatePayment(context.Background(), payment))

	const workers = 8
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				"/api/payments/"+payment.ID+"/approve",
				nil,
				testutils.AuthHeaders(testCtx.AdminJWT),
			)
			// Every racer either wins or re-confirms the same transition
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	stored, err := testCtx.Repository.GetPayment(context.Background(), payment.ID)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, models.StatusLate, stored.Status)
	assert.Equal(t, testCtx.Admin.ID, stored.AdminID)

	// Still exactly one record
	payments, err := testCtx.Repository.ListPayments(context.Background())
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
}
