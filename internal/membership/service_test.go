package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/CharlesOsang017/keja-hook/internal/membership"
)

func TestService_ActivatePaid(t *testing.T) {
	userID := uuid.New()
	membershipID := uuid.New()
	txID := "ws_CO_mem"

	pending := func() *membership.Membership {
		return &membership.Membership{
			ID:            membershipID,
			UserID:        userID,
			Plan:          "Pro",
			PaymentStatus: membership.PaymentPending,
			TransactionID: &txID,
		}
	}

	type testCase struct {
		name      string
		setupMock func(repo *membership.MockRepository, users *membership.MockUserLinker)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *membership.MockRepository, users *membership.MockUserLinker) {
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(pending(), nil)
				repo.EXPECT().DeactivateOthers(gomock.Any(), userID, membershipID).Return(nil)
				repo.EXPECT().
					Activate(gomock.Any(), membershipID, gomock.Any(), gomock.Any()).
					Return(true, nil)
				users.EXPECT().SetMembership(gomock.Any(), userID, membershipID).Return(nil)
			},
		},
		{
			name: "ReplayIsNoOp",
			setupMock: func(repo *membership.MockRepository, _ *membership.MockUserLinker) {
				active := pending()
				active.IsActive = true
				active.PaymentStatus = membership.PaymentPaid
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(active, nil)
			},
		},
		{
			name: "LostRaceButAlreadyPaid",
			setupMock: func(repo *membership.MockRepository, users *membership.MockUserLinker) {
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(pending(), nil)
				repo.EXPECT().DeactivateOthers(gomock.Any(), userID, membershipID).Return(nil)
				repo.EXPECT().
					Activate(gomock.Any(), membershipID, gomock.Any(), gomock.Any()).
					Return(false, nil)

				paid := pending()
				paid.PaymentStatus = membership.PaymentPaid
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(paid, nil)
				users.EXPECT().SetMembership(gomock.Any(), userID, membershipID).Return(nil)
			},
		},
		{
			name: "LostRaceToFailure",
			setupMock: func(repo *membership.MockRepository, _ *membership.MockUserLinker) {
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(pending(), nil)
				repo.EXPECT().DeactivateOthers(gomock.Any(), userID, membershipID).Return(nil)
				repo.EXPECT().
					Activate(gomock.Any(), membershipID, gomock.Any(), gomock.Any()).
					Return(false, nil)

				failed := pending()
				failed.PaymentStatus = membership.PaymentFailed
				repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(failed, nil)
			},
			wantErr: true,
		},
		{
			name: "NotFound",
			setupMock: func(repo *membership.MockRepository, _ *membership.MockUserLinker) {
				repo.EXPECT().
					GetByTransactionID(gomock.Any(), txID).
					Return(nil, membership.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := membership.NewMockRepository(ctrl)
			users := membership.NewMockUserLinker(ctrl)
			tt.setupMock(repo, users)

			svc := membership.NewService(repo, users)
			err := svc.ActivatePaid(context.Background(), txID)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_FailPending(t *testing.T) {
	txID := "ws_CO_mem"
	membershipID := uuid.New()

	t.Run("MarksPendingFailed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := membership.NewMockRepository(ctrl)

		repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(&membership.Membership{
			ID:            membershipID,
			PaymentStatus: membership.PaymentPending,
		}, nil)
		repo.EXPECT().MarkFailed(gomock.Any(), membershipID, "cancelled").Return(nil)

		svc := membership.NewService(repo, membership.NewMockUserLinker(ctrl))
		require.NoError(t, svc.FailPending(context.Background(), txID, "cancelled"))
	})

	t.Run("AlreadySettledIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := membership.NewMockRepository(ctrl)

		repo.EXPECT().GetByTransactionID(gomock.Any(), txID).Return(&membership.Membership{
			ID:            membershipID,
			PaymentStatus: membership.PaymentPaid,
		}, nil)

		svc := membership.NewService(repo, membership.NewMockUserLinker(ctrl))
		require.NoError(t, svc.FailPending(context.Background(), txID, "cancelled"))
	})
}

func TestPlanByName(t *testing.T) {
	plan, ok := membership.PlanByName("Premium")
	require.True(t, ok)
	assert.Equal(t, int64(10), plan.Price)

	_, ok = membership.PlanByName("Enterprise")
	assert.False(t, ok)
}

func TestCanTransact(t *testing.T) {
	assert.False(t, membership.CanTransact(""))
	assert.False(t, membership.CanTransact("Basic"))
	assert.True(t, membership.CanTransact("Pro"))
	assert.True(t, membership.CanTransact("Premium"))
}

func TestService_CreatePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := membership.NewMockRepository(ctrl)
	userID := uuid.New()

	plan, ok := membership.PlanByName("Pro")
	require.True(t, ok)

	repo.EXPECT().
		CreateMembership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *membership.Membership) error {
			m.ID = uuid.New()
			assert.Equal(t, "Pro", m.Plan)
			assert.False(t, m.IsActive)
			assert.Equal(t, membership.PaymentPending, m.PaymentStatus)
			return nil
		})

	svc := membership.NewService(repo, membership.NewMockUserLinker(ctrl))

	m, err := svc.CreatePending(context.Background(), userID, plan, "ws_CO_mem")
	require.NoError(t, err)
	require.NotNil(t, m.TransactionID)
	assert.Equal(t, "ws_CO_mem", *m.TransactionID)
}

func TestService_CreatePendingRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := membership.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateMembership(gomock.Any(), gomock.Any()).
		Return(errors.New("db error"))

	svc := membership.NewService(repo, membership.NewMockUserLinker(ctrl))

	_, err := svc.CreatePending(context.Background(), uuid.New(), membership.Plans[1], "ws_CO_mem")
	require.Error(t, err)
}
