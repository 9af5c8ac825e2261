package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"hopechain/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditLog() *domain.AuditLog {
	actorID := uuid.New()
	return &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      &actorID,
		ActorWallet:  "0xActor00000000000000000000000000000000001",
		ActorRole:    string(domain.RoleDonor),
		Action:       domain.AuditActionDonate,
		ResourceType: "donation",
		Details:      `{"method":"POST","path":"/api/v1/donations","status":201}`,
		IPAddress:    "203.0.113.7",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	entry := newTestAuditLog()

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, entry.ActorID, entry.ActorWallet, entry.ActorRole, string(entry.Action),
			entry.ResourceType, entry.ResourceID, entry.Details, entry.IPAddress, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), newTestAuditLog())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
