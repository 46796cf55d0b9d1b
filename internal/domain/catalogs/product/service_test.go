package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

type memoryRepo struct {
	byID map[id.ID]*Product
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[id.ID]*Product)}
}

func (m *memoryRepo) Create(_ context.Context, p *Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := m.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	copied := *p
	return &copied, nil
}

func (m *memoryRepo) Update(_ context.Context, p *Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, productID id.ID) error {
	if _, ok := m.byID[productID]; !ok {
		return apperror.NewNotFound("product", productID)
	}
	delete(m.byID, productID)
	return nil
}

func (m *memoryRepo) List(context.Context) ([]*Product, error) {
	out := make([]*Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

type recordingAuditor struct {
	actions []string
	err     error
}

func (a *recordingAuditor) LogChange(_ context.Context, _ string, _ id.ID, action string, _ any) error {
	a.actions = append(a.actions, action)
	return a.err
}

func TestCreateValidatesBeforePersisting(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	p := New("", "Grains", types.MustMoney("2.50"), 10)
	err := svc.Create(context.Background(), p)

	require.Error(t, err)
	assert.Empty(t, repo.byID)
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := newMemoryRepo()
	auditor := &recordingAuditor{}
	svc := NewService(repo, auditor)

	p := New("Rice", "Grains", types.MustMoney("2.50"), 100)
	require.NoError(t, svc.Create(context.Background(), p))

	newStock := int64(42)
	updated, err := svc.Update(context.Background(), p.ID, Patch{CurrentStock: &newStock})
	require.NoError(t, err)

	assert.EqualValues(t, 42, updated.CurrentStock)
	assert.EqualValues(t, 42, repo.byID[p.ID].CurrentStock)
	assert.Equal(t, []string{"create", "update"}, auditor.actions)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	stock := int64(1)
	_, err := svc.Update(context.Background(), id.New(), Patch{CurrentStock: &stock})
	assert.True(t, apperror.IsNotFound(err))
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	repo := newMemoryRepo()
	auditor := &recordingAuditor{err: errors.New("audit store down")}
	svc := NewService(repo, auditor)

	p := New("Rice", "Grains", types.MustMoney("2.50"), 100)
	require.NoError(t, svc.Create(context.Background(), p))
	assert.Len(t, repo.byID, 1)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	err := svc.Delete(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
