package tag

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

func TestUpdateWritesClearedColor(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Update().After("gorm:update").Register("capture_update_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	repo := NewTagRepository(&connection.Database{DB: db})

	// DryRun never reports affected rows, so the result is discarded;
	// only the rendered statement matters here.
	_ = repo.Update(context.Background(), &Tag{
		ID:    uuid.New(),
		Name:  "backend",
		Color: "",
	})

	require.True(t, strings.HasPrefix(captured, "UPDATE"), "expected an UPDATE statement, got %q", captured)
	assert.Contains(t, captured, "color", "cleared color must still be written")
}
