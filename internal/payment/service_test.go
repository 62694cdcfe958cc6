package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/CharlesOsang017/keja-hook/internal/investment"
	"github.com/CharlesOsang017/keja-hook/internal/lease"
	"github.com/CharlesOsang017/keja-hook/internal/membership"
	"github.com/CharlesOsang017/keja-hook/internal/partnership"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
	"github.com/CharlesOsang017/keja-hook/internal/property"
)

const partnershipFee = 50000

type serviceMocks struct {
	ledger       *payment.MockLedger
	gateway      *payment.MockGateway
	properties   *payment.MockProperties
	memberships  *payment.MockMemberships
	investments  *payment.MockInvestments
	leases       *payment.MockLeases
	partnerships *payment.MockPartnerships
}

func newService(t *testing.T) (*payment.Service, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		ledger:       payment.NewMockLedger(ctrl),
		gateway:      payment.NewMockGateway(ctrl),
		properties:   payment.NewMockProperties(ctrl),
		memberships:  payment.NewMockMemberships(ctrl),
		investments:  payment.NewMockInvestments(ctrl),
		leases:       payment.NewMockLeases(ctrl),
		partnerships: payment.NewMockPartnerships(ctrl),
	}

	svc := payment.NewService(
		m.ledger, m.gateway, m.properties, m.memberships,
		m.investments, m.leases, m.partnerships, partnershipFee,
	)

	return svc, m
}

// assertErrClass checks that err wraps the same error kind as want.
func assertErrClass(t *testing.T, err, want error) {
	t.Helper()

	require.Error(t, err)

	switch want.(type) {
	case *payment.ValidationError:
		var target *payment.ValidationError
		assert.ErrorAs(t, err, &target)
	case *payment.PreconditionError:
		var target *payment.PreconditionError
		assert.ErrorAs(t, err, &target)
	case *payment.GatewayError:
		var target *payment.GatewayError
		assert.ErrorAs(t, err, &target)
	case *payment.InconsistentStateError:
		var target *payment.InconsistentStateError
		assert.ErrorAs(t, err, &target)
	default:
		assert.ErrorIs(t, err, want)
	}
}

func proMembership(userID uuid.UUID) *membership.Membership {
	return &membership.Membership{
		ID:            uuid.New(),
		UserID:        userID,
		Plan:          "Pro",
		IsActive:      true,
		PaymentStatus: membership.PaymentPaid,
	}
}

func TestService_InitiateRent(t *testing.T) {
	userID := uuid.New()
	leaseID := uuid.New()

	activeLease := &lease.Lease{
		ID:          leaseID,
		TenantID:    userID,
		MonthlyRent: 25000,
		Status:      lease.StatusActive,
	}

	type testCase struct {
		name      string
		phone     string
		setupMock func(m *serviceMocks)
		wantTxID  string
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			phone: "0712345678",
			setupMock: func(m *serviceMocks) {
				m.leases.EXPECT().Get(gomock.Any(), leaseID).Return(activeLease, nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(25000), gomock.Any(), gomock.Any()).
					Return("ws_CO_123", nil)
				m.ledger.EXPECT().
					CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *payment.Transaction) error {
						assert.Equal(t, payment.PurposeRent, tx.Purpose)
						assert.Equal(t, payment.StatusPending, tx.Status)
						assert.Equal(t, leaseID, tx.LinkedEntityID)
						return nil
					})
				m.leases.EXPECT().
					RecordPendingPayment(gomock.Any(), leaseID, "ws_CO_123", int64(25000)).
					Return(&lease.PaymentRecord{}, nil)
			},
			wantTxID: "ws_CO_123",
		},
		{
			name:  "NotTheTenant",
			phone: "0712345678",
			setupMock: func(m *serviceMocks) {
				other := *activeLease
				other.TenantID = uuid.New()
				m.leases.EXPECT().Get(gomock.Any(), leaseID).Return(&other, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:  "LeaseNotActive",
			phone: "0712345678",
			setupMock: func(m *serviceMocks) {
				terminated := *activeLease
				terminated.Status = lease.StatusTerminated
				m.leases.EXPECT().Get(gomock.Any(), leaseID).Return(&terminated, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:  "InvalidPhone",
			phone: "12345",
			setupMock: func(m *serviceMocks) {
				m.leases.EXPECT().Get(gomock.Any(), leaseID).Return(activeLease, nil)
			},
			wantErr: &payment.ValidationError{},
		},
		{
			name:  "GatewayDown",
			phone: "0712345678",
			setupMock: func(m *serviceMocks) {
				m.leases.EXPECT().Get(gomock.Any(), leaseID).Return(activeLease, nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &payment.GatewayError{Op: "stk push", Err: errors.New("timeout")})
			},
			wantErr: &payment.GatewayError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			txID, err := svc.InitiateRent(context.Background(), userID, leaseID, tt.phone)

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTxID, txID)
		})
	}
}

func TestService_InitiatePurchase(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	forSale := &property.Property{
		ID:          propertyID,
		Title:       "Garden Estate Villa",
		Price:       4_500_000,
		Status:      property.StatusAvailable,
		ListingType: property.ListingSale,
	}

	type testCase struct {
		name      string
		setupMock func(m *serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(forSale, nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(4_500_000), gomock.Any(), gomock.Any()).
					Return("ws_CO_sale", nil)
				m.ledger.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "AlreadySold",
			setupMock: func(m *serviceMocks) {
				sold := *forSale
				sold.Status = property.StatusSold
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(&sold, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name: "RentalListing",
			setupMock: func(m *serviceMocks) {
				rental := *forSale
				rental.ListingType = property.ListingRental
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(&rental, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			_, err := svc.InitiatePurchase(context.Background(), userID, propertyID, "0712345678")

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_InitiateTokenPurchase(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	tokenized := &property.Property{
		ID:              propertyID,
		Title:           "Kilimani Towers",
		IsTokenized:     true,
		TotalTokens:     1000,
		AvailableTokens: 400,
		TokenPrice:      1500,
	}

	type testCase struct {
		name      string
		tokens    int64
		setupMock func(m *serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			tokens: 10,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(tokenized, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(proMembership(userID), nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(15000), gomock.Any(), gomock.Any()).
					Return("ws_CO_token", nil)
				m.ledger.EXPECT().
					CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *payment.Transaction) error {
						assert.Equal(t, payment.PurposeToken, tx.Purpose)
						assert.Equal(t, int64(15000), tx.Amount)
						return nil
					})
			},
		},
		{
			name:      "ZeroTokens",
			tokens:    0,
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
		{
			name:   "NotTokenized",
			tokens: 10,
			setupMock: func(m *serviceMocks) {
				plain := *tokenized
				plain.IsTokenized = false
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(&plain, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:   "NotEnoughTokensLeft",
			tokens: 500,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(tokenized, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:   "NoMembership",
			tokens: 10,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(tokenized, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(nil, membership.ErrNotFound)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:   "FreePlan",
			tokens: 10,
			setupMock: func(m *serviceMocks) {
				basic := proMembership(userID)
				basic.Plan = "Basic"
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(tokenized, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(basic, nil)
			},
			wantErr: &payment.PreconditionError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			_, err := svc.InitiateTokenPurchase(context.Background(), userID, propertyID, tt.tokens, "0712345678")

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_InitiateInvestment(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	// Capacity defaults to half the price: 1,000,000.
	investable := &property.Property{
		ID:    propertyID,
		Title: "Riverside Apartments",
		Price: 2_000_000,
	}

	type testCase struct {
		name      string
		amount    int64
		setupMock func(m *serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			amount: 200_000,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(investable, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(proMembership(userID), nil)
				m.investments.EXPECT().SumActive(gomock.Any(), propertyID).Return(int64(300_000), nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(200_000), gomock.Any(), gomock.Any()).
					Return("ws_CO_inv", nil)
				m.investments.EXPECT().
					Reserve(gomock.Any(), userID, propertyID, int64(200_000), int64(2_000_000), "ws_CO_inv").
					Return(&investment.Investment{ID: uuid.New()}, nil)
				m.ledger.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "NonPositiveAmount",
			amount:    0,
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
		{
			name:   "CapacityAlreadyFull",
			amount: 200_000,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(investable, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(proMembership(userID), nil)
				m.investments.EXPECT().SumActive(gomock.Any(), propertyID).Return(int64(900_000), nil)
			},
			wantErr: &payment.PreconditionError{},
		},
		{
			name:   "LostCapacityRace",
			amount: 200_000,
			setupMock: func(m *serviceMocks) {
				m.properties.EXPECT().Get(gomock.Any(), propertyID).Return(investable, nil)
				m.memberships.EXPECT().ActiveForUser(gomock.Any(), userID).Return(proMembership(userID), nil)
				m.investments.EXPECT().SumActive(gomock.Any(), propertyID).Return(int64(300_000), nil)
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("ws_CO_inv", nil)
				m.investments.EXPECT().
					Reserve(gomock.Any(), userID, propertyID, int64(200_000), int64(2_000_000), "ws_CO_inv").
					Return(nil, investment.ErrCapacityExceeded)
			},
			wantErr: &payment.PreconditionError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			_, err := svc.InitiateInvestment(context.Background(), userID, propertyID, tt.amount, "0712345678")

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_InitiateMembershipUpgrade(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		plan      string
		setupMock func(m *serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			plan: "Premium",
			setupMock: func(m *serviceMocks) {
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(10), gomock.Any(), gomock.Any()).
					Return("ws_CO_mem", nil)
				m.memberships.EXPECT().
					CreatePending(gomock.Any(), userID, gomock.Any(), "ws_CO_mem").
					Return(&membership.Membership{ID: uuid.New()}, nil)
				m.ledger.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "UnknownPlan",
			plan:      "Enterprise",
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
		{
			name:      "FreePlanNotPayable",
			plan:      "Basic",
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			_, err := svc.InitiateMembershipUpgrade(context.Background(), userID, tt.plan, "0712345678")

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_InitiatePartnership(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		role      string
		pType     partnership.Type
		pname     string
		setupMock func(m *serviceMocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			role:  "investor",
			pType: partnership.TypeDeveloper,
			pname: "Acme Builders",
			setupMock: func(m *serviceMocks) {
				m.gateway.EXPECT().
					RequestPush(gomock.Any(), "254712345678", int64(partnershipFee), gomock.Any(), gomock.Any()).
					Return("ws_CO_part", nil)
				m.partnerships.EXPECT().
					CreatePending(gomock.Any(), userID, partnership.TypeDeveloper, "Acme Builders", int64(partnershipFee), "ws_CO_part").
					Return(&partnership.Partnership{ID: uuid.New()}, nil)
				m.ledger.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "TenantRoleRejected",
			role:      "tenant",
			pType:     partnership.TypeDeveloper,
			pname:     "Acme Builders",
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.PreconditionError{},
		},
		{
			name:      "MissingName",
			role:      "investor",
			pType:     partnership.TypeDeveloper,
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
		{
			name:      "UnknownType",
			role:      "investor",
			pType:     partnership.Type("franchise"),
			pname:     "Acme Builders",
			setupMock: func(_ *serviceMocks) {},
			wantErr:   &payment.ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			_, err := svc.InitiatePartnership(context.Background(), userID, tt.role, tt.pType, tt.pname, "0712345678")

			if tt.wantErr != nil {
				assertErrClass(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}
