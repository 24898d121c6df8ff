package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

func TestRecordService(t *testing.T) {
	store := memory.NewRecordStore()
	svc := NewRecordService(store)
	ctx := context.Background()

	require.NoError(t, store.WriteRecord(ctx, &domain.IndexedRecord{ID: "r1", BatchID: "b1"}))
	require.NoError(t, store.WriteRecord(ctx, &domain.IndexedRecord{ID: "r2", BatchID: "b2"}))

	rec, err := svc.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "b1", rec.BatchID)

	recs, err := svc.List(ctx, "b2")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r2", recs[0].ID)

	require.NoError(t, svc.Delete(ctx, "r1"))
	_, err = svc.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "r1"), domain.ErrNotFound)
}

func TestRecordService_EmptyID(t *testing.T) {
	svc := NewRecordService(memory.NewRecordStore())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}
