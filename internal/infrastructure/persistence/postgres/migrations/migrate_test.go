package migrations

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrationStatus(t *testing.T) {
	t.Run("existing record means already applied", func(t *testing.T) {
		isNew, err := migrationStatus(nil)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("missing record means new migration", func(t *testing.T) {
		isNew, err := migrationStatus(gorm.ErrRecordNotFound)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("wrapped not-found is still new", func(t *testing.T) {
		isNew, err := migrationStatus(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound))
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("other lookup errors propagate", func(t *testing.T) {
		lookupErr := errors.New("connection reset")
		isNew, err := migrationStatus(lookupErr)
		assert.ErrorIs(t, err, lookupErr)
		assert.False(t, isNew)
	})
}
