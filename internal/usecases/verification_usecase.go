package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/domain/repositories"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/pkg/crypto"
	"student-portal.backend/pkg/logger"
	"student-portal.backend/pkg/metrics"
)

// VerificationUsecase is the approval state machine. A (User, PaymentProof)
// pair moves from pending/inactive to either approved/active-with-fresh-
// credentials or rejected/inactive; both outcomes are terminal.
type VerificationUsecase struct {
	userRepo  repositories.UserRepository
	proofRepo repositories.PaymentProofRepository
	uow       repositories.UnitOfWork
	notifier  services.Notifier

	genTempPassword func(length int) (string, error)
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	userRepo repositories.UserRepository,
	proofRepo repositories.PaymentProofRepository,
	uow repositories.UnitOfWork,
	notifier services.Notifier,
) *VerificationUsecase {
	return &VerificationUsecase{
		userRepo:        userRepo,
		proofRepo:       proofRepo,
		uow:             uow,
		notifier:        notifier,
		genTempPassword: crypto.GenerateTempPassword,
	}
}

// ListPending returns users whose payment proof awaits adjudication
func (u *VerificationUsecase) ListPending(ctx context.Context, limit, offset int) ([]*entities.User, int64, error) {
	return u.userRepo.ListWithPendingProof(ctx, limit, offset)
}

// ProcessVerification adjudicates a pending proof. Approval regenerates the
// user's credentials and activates the account in the same transaction that
// flips the proof status, so no reader ever observes one without the other.
// The proof row is claimed with a conditional update; a concurrent second
// call gets ErrAlreadyProcessed.
func (u *VerificationUsecase) ProcessVerification(ctx context.Context, userID uuid.UUID, input *entities.VerificationInput) (*entities.VerificationResult, error) {
	action := entities.VerificationAction(input.Action)
	if action != entities.VerificationActionApprove && action != entities.VerificationActionReject {
		return nil, domainerrors.ErrInvalidAction
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	proof, err := u.proofRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Fast path; the conditional update inside the transaction is the
	// authoritative check.
	if proof.Status != entities.PaymentStatusPending {
		return nil, domainerrors.ErrAlreadyProcessed
	}

	if action == entities.VerificationActionApprove {
		return u.approve(ctx, user, proof)
	}
	return u.reject(ctx, user, proof, input.Reason)
}

func (u *VerificationUsecase) approve(ctx context.Context, user *entities.User, proof *entities.PaymentProof) (*entities.VerificationResult, error) {
	// Generated before the transaction: no external work inside it, and the
	// plaintext only lives long enough to be mailed.
	tempPassword, err := u.genTempPassword(crypto.TempPasswordLength)
	if err != nil {
		return nil, err
	}
	passwordHash, err := crypto.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.proofRepo.UpdateStatusIfPending(txCtx, proof.ID, entities.PaymentStatusApproved, null.String{}); err != nil {
			return err
		}
		return u.userRepo.UpdateCredentials(txCtx, user.ID, passwordHash, true, true)
	})
	if err != nil {
		return nil, err
	}

	metrics.VerificationsTotal.WithLabelValues("approve").Inc()
	logger.Info(ctx, "Student approved", zap.String("userId", user.ID.String()))

	go u.notifier.Send(context.Background(), services.NotificationApproved, user.Email, services.NotificationPayload{
		TempPassword: tempPassword,
	})

	return &entities.VerificationResult{
		UserID:  user.ID,
		Status:  entities.PaymentStatusApproved,
		Message: "User approved and credentials sent",
	}, nil
}

func (u *VerificationUsecase) reject(ctx context.Context, user *entities.User, proof *entities.PaymentProof, reason string) (*entities.VerificationResult, error) {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.proofRepo.UpdateStatusIfPending(txCtx, proof.ID, entities.PaymentStatusRejected, null.StringFrom(reason))
	})
	if err != nil {
		return nil, err
	}

	metrics.VerificationsTotal.WithLabelValues("reject").Inc()
	logger.Info(ctx, "Student rejected", zap.String("userId", user.ID.String()))

	go u.notifier.Send(context.Background(), services.NotificationRejected, user.Email, services.NotificationPayload{
		Reason: reason,
	})

	return &entities.VerificationResult{
		UserID:  user.ID,
		Status:  entities.PaymentStatusRejected,
		Message: "User rejected and notification sent",
	}, nil
}
