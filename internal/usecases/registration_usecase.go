package usecases

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/domain/repositories"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/pkg/crypto"
	"student-portal.backend/pkg/logger"
	"student-portal.backend/pkg/metrics"
)

const proofDirectory = "payment_proofs"

// RegistrationUsecase creates the inactive user, profile and pending payment
// proof from an applicant's submission.
type RegistrationUsecase struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.StudentProfileRepository
	proofRepo   repositories.PaymentProofRepository
	uow         repositories.UnitOfWork
	storage     services.FileStorage
	notifier    services.Notifier
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.StudentProfileRepository,
	proofRepo repositories.PaymentProofRepository,
	uow repositories.UnitOfWork,
	storage services.FileStorage,
	notifier services.Notifier,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		proofRepo:   proofRepo,
		uow:         uow,
		storage:     storage,
		notifier:    notifier,
	}
}

// Register creates the User + StudentProfile + PaymentProof triple. The file
// is persisted before the transaction opens (the locator goes into the proof
// row; no external I/O happens inside the transaction), and the three rows
// commit atomically. A duplicate email fails the whole registration.
func (u *RegistrationUsecase) Register(ctx context.Context, input *entities.RegisterInput, file io.Reader, filename string) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Fast duplicate check before touching storage. The transaction below
	// re-checks, so a racing registration still cannot slip through.
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	locator, err := u.storage.Store(ctx, file, proofDirectory, filename)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: crypto.PlaceholderHash,
		Role:         entities.UserRoleStudent,
		IsActive:     false,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.userRepo.GetByEmail(txCtx, email); err == nil {
			return domainerrors.ErrAlreadyExists
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		profile := &entities.StudentProfile{
			UserID:    user.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Location:  input.Location,
		}
		if err := u.profileRepo.Create(txCtx, profile); err != nil {
			return err
		}
		user.Profile = profile

		proof := &entities.PaymentProof{
			UserID:      user.ID,
			FileLocator: locator,
			Status:      entities.PaymentStatusPending,
		}
		if err := u.proofRepo.Create(txCtx, proof); err != nil {
			return err
		}
		user.Proof = proof

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	logger.Info(ctx, "Registration accepted", zap.String("userId", user.ID.String()))

	// Fire-and-forget; the notifier logs its own failures.
	go u.notifier.Send(context.Background(), services.NotificationRegistrationReceived, user.Email, services.NotificationPayload{
		FullName: input.FirstName + " " + input.LastName,
	})

	return user, nil
}
