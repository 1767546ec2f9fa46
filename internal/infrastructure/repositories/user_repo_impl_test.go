package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		Email:        "Jane.Doe@Example.com",
		PasswordHash: "hash",
		Role:         entities.UserRoleStudent,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", byID.Email)
	assert.Equal(t, entities.UserRoleStudent, byID.Role)
	assert.False(t, byID.IsActive)

	// Lookups are case-insensitive.
	byEmail, err := repo.GetByEmail(ctx, "JANE.DOE@example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &entities.User{Email: "dup@example.com", PasswordHash: "h", Role: entities.UserRoleStudent}
	require.NoError(t, repo.Create(ctx, first))

	// Same address with different casing hits the unique index.
	second := &entities.User{Email: "DUP@example.com", PasswordHash: "h", Role: entities.UserRoleStudent}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_UpdateCredentials(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{Email: "u@example.com", PasswordHash: "placeholder", Role: entities.UserRoleStudent}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateCredentials(ctx, user.ID, "new-hash", true, true))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.True(t, got.IsActive)
	assert.True(t, got.MustChangePassword)

	err = repo.UpdateCredentials(ctx, uuid.New(), "h", true, true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{Email: "u@example.com", PasswordHash: "temp-hash", Role: entities.UserRoleStudent, MustChangePassword: true}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.UpdateCredentials(ctx, user.ID, "temp-hash", true, true))

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "chosen-hash"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chosen-hash", got.PasswordHash)
	assert.True(t, got.IsActive)
	assert.False(t, got.MustChangePassword)

	err = repo.UpdatePassword(ctx, uuid.New(), "h")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_ListWithPendingProof(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createPaymentProofTable(t, db)
	userRepo := NewUserRepository(db)
	proofRepo := NewPaymentProofRepository(db)
	ctx := context.Background()

	var pendingIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		user := &entities.User{Email: uuid.NewString() + "@example.com", PasswordHash: "h", Role: entities.UserRoleStudent}
		require.NoError(t, userRepo.Create(ctx, user))
		proof := &entities.PaymentProof{UserID: user.ID, FileLocator: "f", Status: entities.PaymentStatusPending}
		require.NoError(t, proofRepo.Create(ctx, proof))
		pendingIDs = append(pendingIDs, user.ID)
	}

	// One already adjudicated, one with no proof at all; neither shows up.
	approved := &entities.User{Email: "approved@example.com", PasswordHash: "h", Role: entities.UserRoleStudent}
	require.NoError(t, userRepo.Create(ctx, approved))
	approvedProof := &entities.PaymentProof{UserID: approved.ID, FileLocator: "f", Status: entities.PaymentStatusApproved}
	require.NoError(t, proofRepo.Create(ctx, approvedProof))

	admin := &entities.User{Email: "admin@example.com", PasswordHash: "h", Role: entities.UserRoleAdmin, IsActive: true}
	require.NoError(t, userRepo.Create(ctx, admin))

	users, total, err := userRepo.ListWithPendingProof(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.Contains(t, pendingIDs, u.ID)
	}

	paged, total, err := userRepo.ListWithPendingProof(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 2)
}
