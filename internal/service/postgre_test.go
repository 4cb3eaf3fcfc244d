package service

import (
	"context"
	"testing"

	"querytool/internal/config"
	"querytool/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUnreachableServer(t *testing.T) {
	cfg := config.Database{Host: "127.0.0.1", Port: 1, Name: "app", SSLMode: "disable"}

	db, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, db)

	_, err = NewExecutor(db, nil).Execute(context.Background(), model.QueryRequest{Query: "SELECT 1"})
	var execErr *ExecutionError
	assert.ErrorAs(t, err, &execErr)

	assert.NoError(t, db.Close())
}
