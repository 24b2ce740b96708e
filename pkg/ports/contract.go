package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests verifying that a
// DocumentStore implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	sample := func() *domain.ConditionExpression {
		leaf := condition.NewComparison()
		leaf.Left = &domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal}
		right := domain.NewConstant("10")
		leaf.Right = &right
		return &domain.ConditionExpression{
			Kind:     domain.KindAnd,
			Children: []*domain.ConditionExpression{leaf, condition.NewLiteral(true)},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		expr := sample()
		err := store.Save(ctx, docID, expr)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		require.NotNil(t, loaded)
		assert.Equal(t, domain.KindAnd, loaded.Kind)
		require.Len(t, loaded.Children, 2)
		assert.Equal(t, domain.KindComparison, loaded.Children[0].Kind)
		require.NotNil(t, loaded.Children[0].Left)
		assert.Equal(t, "hp", loaded.Children[0].Left.VariableID)
		assert.Equal(t, domain.KindLiteral, loaded.Children[1].Kind)
		assert.True(t, loaded.Children[1].Value)
	})

	t.Run("Save Nil Means Always True", func(t *testing.T) {
		alwaysID := docID + "-always"
		require.NoError(t, store.Save(ctx, alwaysID, nil))
		defer func() { _ = store.Delete(ctx, alwaysID) }()

		loaded, err := store.Load(ctx, alwaysID)
		require.NoError(t, err)
		assert.Nil(t, loaded, "nil condition should round-trip as nil")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, sample()))

		err := store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, sample())
		_ = store.Save(ctx, id2, nil)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
