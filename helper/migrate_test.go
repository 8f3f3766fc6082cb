package helper_test

import (
	"conference/helper"
	"conference/migrations"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_Ensure(t *testing.T) {
	calls := 0
	failures := 1

	schema := helper.NewSchemaWith(func() error {
		calls++
		if calls <= failures {
			return errors.New("connection refused")
		}

		return nil
	})

	assert.Error(t, schema.Ensure(context.Background()))
	assert.NoError(t, schema.Ensure(context.Background()))
	assert.NoError(t, schema.Ensure(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestSchema_EnsureCancelled(t *testing.T) {
	schema := helper.NewSchemaWith(func() error {
		t.Fatal("apply must not run for a cancelled context")

		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, schema.Ensure(ctx), context.Canceled)
}

func TestSchema_EnsureFailsFastWhileApplying(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	schema := helper.NewSchemaWith(func() error {
		close(started)
		<-release

		return nil
	})

	done := make(chan error, 1)

	go func() {
		done <- schema.Ensure(context.Background())
	}()

	<-started

	assert.ErrorIs(t, schema.Ensure(context.Background()), helper.ErrSchemaPending)

	close(release)
	assert.NoError(t, <-done)
	assert.NoError(t, schema.Ensure(context.Background()))
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Postgres, migrations.PostgresDir)
	assert.NoError(t, err)

	var up, down int

	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			down++
		}
	}

	assert.Equal(t, 3, up)
	assert.Equal(t, up, down)
}
