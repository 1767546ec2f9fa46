package usecases_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/internal/usecases"
	"student-portal.backend/pkg/crypto"
)

func registerInput() *entities.RegisterInput {
	return &entities.RegisterInput{
		Email:     "Jane.Doe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+123456789",
		Location:  "Berlin",
	}
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockStudentProfileRepository)
	proofRepo := new(MockPaymentProofRepository)
	uow := new(MockUnitOfWork)
	storage := new(MockFileStorage)
	notifier := newMockNotifier()

	usecase := usecases.NewRegistrationUsecase(userRepo, profileRepo, proofRepo, uow, storage, notifier)

	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(nil, domainerrors.ErrNotFound)
	storage.On("Store", mock.Anything, mock.Anything, "payment_proofs", "receipt.pdf").Return("payment_proofs/abc_receipt.pdf", nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "jane.doe@example.com" &&
			u.PasswordHash == crypto.PlaceholderHash &&
			u.Role == entities.UserRoleStudent &&
			!u.IsActive
	})).Return(nil)
	profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.StudentProfile) bool {
		return p.FirstName == "Jane" && p.LastName == "Doe"
	})).Return(nil)
	proofRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.PaymentProof) bool {
		return p.FileLocator == "payment_proofs/abc_receipt.pdf" && p.Status == entities.PaymentStatusPending
	})).Return(nil)

	user, err := usecase.Register(context.Background(), registerInput(), strings.NewReader("proof bytes"), "receipt.pdf")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.False(t, user.IsActive)
	require.NotNil(t, user.Proof)
	assert.Equal(t, entities.PaymentStatusPending, user.Proof.Status)

	select {
	case n := <-notifier.sent:
		assert.Equal(t, services.NotificationRegistrationReceived, n.Kind)
		assert.Equal(t, "jane.doe@example.com", n.Recipient)
		assert.Equal(t, "Jane Doe", n.Payload.FullName)
	case <-time.After(time.Second):
		t.Fatal("expected a registration notification")
	}

	userRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	proofRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockFileStorage)
	notifier := newMockNotifier()

	usecase := usecases.NewRegistrationUsecase(userRepo, new(MockStudentProfileRepository), new(MockPaymentProofRepository), new(MockUnitOfWork), storage, notifier)

	existing := &entities.User{Email: "jane.doe@example.com"}
	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(existing, nil)

	_, err := usecase.Register(context.Background(), registerInput(), strings.NewReader("proof"), "receipt.pdf")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// No file must be written when the email is already taken.
	storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmailInsideTransaction(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockFileStorage)
	uow := new(MockUnitOfWork)
	notifier := newMockNotifier()

	usecase := usecases.NewRegistrationUsecase(userRepo, new(MockStudentProfileRepository), new(MockPaymentProofRepository), uow, storage, notifier)

	existing := &entities.User{Email: "jane.doe@example.com"}
	// Free on the fast check, taken when re-checked inside the transaction.
	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(existing, nil).Once()
	storage.On("Store", mock.Anything, mock.Anything, "payment_proofs", "receipt.pdf").Return("payment_proofs/x", nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)

	_, err := usecase.Register(context.Background(), registerInput(), strings.NewReader("proof"), "receipt.pdf")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_StorageFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockFileStorage)
	notifier := newMockNotifier()

	usecase := usecases.NewRegistrationUsecase(userRepo, new(MockStudentProfileRepository), new(MockPaymentProofRepository), new(MockUnitOfWork), storage, notifier)

	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(nil, domainerrors.ErrNotFound)
	storage.On("Store", mock.Anything, mock.Anything, "payment_proofs", "receipt.pdf").Return("", domainerrors.ErrStorage)

	_, err := usecase.Register(context.Background(), registerInput(), strings.NewReader("proof"), "receipt.pdf")
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ProfileCreateFailureAbortsTransaction(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockStudentProfileRepository)
	proofRepo := new(MockPaymentProofRepository)
	uow := new(MockUnitOfWork)
	storage := new(MockFileStorage)
	notifier := newMockNotifier()

	usecase := usecases.NewRegistrationUsecase(userRepo, profileRepo, proofRepo, uow, storage, notifier)

	userRepo.On("GetByEmail", mock.Anything, "jane.doe@example.com").Return(nil, domainerrors.ErrNotFound)
	storage.On("Store", mock.Anything, mock.Anything, "payment_proofs", "receipt.pdf").Return("payment_proofs/x", nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	profileRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := usecase.Register(context.Background(), registerInput(), strings.NewReader("proof"), "receipt.pdf")
	assert.ErrorIs(t, err, assert.AnError)
	proofRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	select {
	case <-notifier.sent:
		t.Fatal("no notification must be sent on a failed registration")
	case <-time.After(50 * time.Millisecond):
	}
}
