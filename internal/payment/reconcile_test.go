package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

type reconcilerMocks struct {
	ledger     *payment.MockLedger
	gateway    *payment.MockGateway
	dispatcher *payment.MockDispatcher
	notifier   *payment.MockNotifier
}

func newReconciler(t *testing.T, purpose payment.Purpose) (*payment.Reconciler, *reconcilerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &reconcilerMocks{
		ledger:     payment.NewMockLedger(ctrl),
		gateway:    payment.NewMockGateway(ctrl),
		dispatcher: payment.NewMockDispatcher(ctrl),
		notifier:   payment.NewMockNotifier(ctrl),
	}

	r := payment.NewReconciler(
		m.ledger,
		m.gateway,
		map[payment.Purpose]payment.Dispatcher{purpose: m.dispatcher},
		m.notifier,
	)

	return r, m
}

// expectNotice registers the settlement notice expectation and returns a
// channel that closes once the notice goroutine has fired.
func (m *reconcilerMocks) expectNotice() <-chan struct{} {
	fired := make(chan struct{})

	m.notifier.EXPECT().
		PaymentSettled(gomock.Any(), gomock.Any()).
		Do(func(context.Context, *payment.Transaction) { close(fired) })

	return fired
}

func waitForNotice(t *testing.T, fired <-chan struct{}) {
	t.Helper()

	if fired == nil {
		return
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("settlement notice was not delivered")
	}
}

func pendingTx(purpose payment.Purpose) *payment.Transaction {
	return &payment.Transaction{
		ID:            uuid.New(),
		TransactionID: "ws_CO_42",
		Purpose:       purpose,
		OwnerID:       uuid.New(),
		Amount:        15000,
		Status:        payment.StatusPending,
	}
}

func TestReconciler_HandleCallback(t *testing.T) {
	success := payment.GatewayResult{
		TransactionID: "ws_CO_42",
		ResultCode:    0,
		ResultDesc:    "The service request is processed successfully.",
		Receipt:       "SBK1XYZ",
	}

	type testCase struct {
		name      string
		result    payment.GatewayResult
		setupMock func(m *reconcilerMocks) <-chan struct{}
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "SuccessActivatesOnce",
			result: success,
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeToken), nil)
				m.ledger.EXPECT().
					MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
					Return(true, nil)
				m.dispatcher.EXPECT().
					Activate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *payment.Transaction) error {
						assert.Equal(t, payment.StatusCompleted, tx.Status)
						require.NotNil(t, tx.ReceiptNumber)
						assert.Equal(t, "SBK1XYZ", *tx.ReceiptNumber)
						return nil
					})
				m.ledger.EXPECT().MarkActivated(gomock.Any(), "ws_CO_42").Return(nil)

				return m.expectNotice()
			},
		},
		{
			name:   "DuplicateCallbackIsNoOp",
			result: success,
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				done := pendingTx(payment.PurposeToken)
				done.Status = payment.StatusCompleted
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(done, nil)

				return nil
			},
		},
		{
			name:   "LostRaceReadsStoredOutcome",
			result: success,
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeToken), nil)
				m.ledger.EXPECT().
					MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
					Return(false, nil)

				settled := pendingTx(payment.PurposeToken)
				settled.Status = payment.StatusCompleted
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(settled, nil)

				return nil
			},
		},
		{
			name: "FailureSettlesMirrorAndNotifies",
			result: payment.GatewayResult{
				TransactionID: "ws_CO_42",
				ResultCode:    1032,
				ResultDesc:    "Request cancelled by user",
			},
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeToken), nil)
				m.ledger.EXPECT().
					MarkFailed(gomock.Any(), "ws_CO_42", "Request cancelled by user", gomock.Any()).
					Return(true, nil)
				m.dispatcher.EXPECT().
					Fail(gomock.Any(), gomock.Any(), "Request cancelled by user").
					Return(nil)

				return m.expectNotice()
			},
		},
		{
			name:   "UnknownTransaction",
			result: success,
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(nil, payment.ErrNotFound)

				return nil
			},
			wantErr: true,
		},
		{
			name:   "ActivationFailureKeepsTransactionCompleted",
			result: success,
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeToken), nil)
				m.ledger.EXPECT().
					MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
					Return(true, nil)
				m.dispatcher.EXPECT().
					Activate(gomock.Any(), gomock.Any()).
					Return(errors.New("db down"))

				return nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newReconciler(t, payment.PurposeToken)
			fired := tt.setupMock(m)

			err := r.HandleCallback(context.Background(), tt.result)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			waitForNotice(t, fired)
		})
	}
}

func TestReconciler_DispatcherRunsAtMostOnce(t *testing.T) {
	// Callback and poll race on the same transaction: the conditional write
	// admits exactly one winner, so the dispatcher runs exactly once.
	r, m := newReconciler(t, payment.PurposeInvestment)

	res := payment.GatewayResult{
		TransactionID: "ws_CO_42",
		ResultCode:    0,
		Receipt:       "SBK1XYZ",
	}

	m.ledger.EXPECT().
		GetByTransactionID(gomock.Any(), "ws_CO_42").
		Return(pendingTx(payment.PurposeInvestment), nil).
		Times(2)

	gomock.InOrder(
		m.ledger.EXPECT().
			MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
			Return(true, nil),
		m.ledger.EXPECT().
			MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
			Return(false, nil),
	)

	m.dispatcher.EXPECT().Activate(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.ledger.EXPECT().MarkActivated(gomock.Any(), "ws_CO_42").Return(nil).Times(1)
	fired := m.expectNotice()

	settled := pendingTx(payment.PurposeInvestment)
	settled.Status = payment.StatusCompleted
	m.ledger.EXPECT().
		GetByTransactionID(gomock.Any(), "ws_CO_42").
		Return(settled, nil)

	require.NoError(t, r.HandleCallback(context.Background(), res))
	require.NoError(t, r.HandleCallback(context.Background(), res))
	waitForNotice(t, fired)
}

func TestReconciler_CallbackDoesNotWaitOnNotifier(t *testing.T) {
	// Notice delivery retries for tens of seconds when the webhook is down;
	// the callback must still settle and return immediately.
	r, m := newReconciler(t, payment.PurposeToken)

	m.ledger.EXPECT().
		GetByTransactionID(gomock.Any(), "ws_CO_42").
		Return(pendingTx(payment.PurposeToken), nil)
	m.ledger.EXPECT().
		MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
		Return(true, nil)
	m.dispatcher.EXPECT().Activate(gomock.Any(), gomock.Any()).Return(nil)
	m.ledger.EXPECT().MarkActivated(gomock.Any(), "ws_CO_42").Return(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	m.notifier.EXPECT().
		PaymentSettled(gomock.Any(), gomock.Any()).
		Do(func(context.Context, *payment.Transaction) {
			close(started)
			<-release
		})

	// Delivery is only unblocked after the callback has already returned, so
	// this would deadlock if settlement waited on the notifier.
	err := r.HandleCallback(context.Background(), payment.GatewayResult{
		TransactionID: "ws_CO_42",
		ResultCode:    0,
		Receipt:       "SBK1XYZ",
	})
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("settlement notice was never dispatched")
	}

	close(release)
}

func TestReconciler_Verify(t *testing.T) {
	type testCase struct {
		name        string
		setupMock   func(m *reconcilerMocks) <-chan struct{}
		wantPending bool
		wantStatus  payment.Status
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "TerminalReadSkipsGateway",
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				done := pendingTx(payment.PurposeRent)
				done.Status = payment.StatusCompleted
				receipt := "SBK1XYZ"
				done.ReceiptNumber = &receipt
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(done, nil)

				return nil
			},
			wantStatus: payment.StatusCompleted,
		},
		{
			name: "StillProcessingStaysPending",
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeRent), nil)
				m.gateway.EXPECT().
					QueryStatus(gomock.Any(), "ws_CO_42").
					Return(payment.StatusResult{Pending: true}, nil)

				return nil
			},
			wantPending: true,
			wantStatus:  payment.StatusPending,
		},
		{
			name: "SettlesInlineFromQuery",
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeRent), nil)
				m.gateway.EXPECT().
					QueryStatus(gomock.Any(), "ws_CO_42").
					Return(payment.StatusResult{ResultCode: 0, Receipt: "SBK1XYZ"}, nil)
				m.ledger.EXPECT().
					MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
					Return(true, nil)
				m.dispatcher.EXPECT().Activate(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().MarkActivated(gomock.Any(), "ws_CO_42").Return(nil)

				return m.expectNotice()
			},
			wantStatus: payment.StatusCompleted,
		},
		{
			name: "GatewayQueryFails",
			setupMock: func(m *reconcilerMocks) <-chan struct{} {
				m.ledger.EXPECT().
					GetByTransactionID(gomock.Any(), "ws_CO_42").
					Return(pendingTx(payment.PurposeRent), nil)
				m.gateway.EXPECT().
					QueryStatus(gomock.Any(), "ws_CO_42").
					Return(payment.StatusResult{}, &payment.GatewayError{Op: "stk query", Err: errors.New("timeout")})

				return nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newReconciler(t, payment.PurposeRent)
			fired := tt.setupMock(m)

			res, err := r.Verify(context.Background(), "ws_CO_42")

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPending, res.Pending)
			assert.Equal(t, tt.wantStatus, res.Status)
			waitForNotice(t, fired)
		})
	}
}

func TestReconciler_MissingDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)

	ledger := payment.NewMockLedger(ctrl)
	gateway := payment.NewMockGateway(ctrl)
	notifier := payment.NewMockNotifier(ctrl)

	r := payment.NewReconciler(ledger, gateway, map[payment.Purpose]payment.Dispatcher{}, notifier)

	ledger.EXPECT().
		GetByTransactionID(gomock.Any(), "ws_CO_42").
		Return(pendingTx(payment.PurposeSale), nil)
	ledger.EXPECT().
		MarkCompleted(gomock.Any(), "ws_CO_42", "SBK1XYZ", gomock.Any()).
		Return(true, nil)

	err := r.HandleCallback(context.Background(), payment.GatewayResult{
		TransactionID: "ws_CO_42",
		ResultCode:    0,
		Receipt:       "SBK1XYZ",
	})

	var inconsistent *payment.InconsistentStateError
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, payment.PurposeSale, inconsistent.Purpose)
}

func TestTransaction_Terminal(t *testing.T) {
	now := time.Now()

	tx := payment.Transaction{Status: payment.StatusPending, CreatedAt: now}
	assert.False(t, tx.Terminal())

	tx.Status = payment.StatusCompleted
	assert.True(t, tx.Terminal())

	tx.Status = payment.StatusFailed
	assert.True(t, tx.Terminal())
}
