package app_test

import (
	otelMocks "conference/infras/otel/mocks"
	"conference/internal/app"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) add(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps = append(r.steps, step)
}

type fakeServer struct {
	log *recorder
	err error
}

func (s *fakeServer) Serve(ctx context.Context) error {
	s.log.add("serve")
	<-ctx.Done()
	s.log.add("drained")

	return s.err
}

type fakeScheduler struct {
	log *recorder
}

func (s *fakeScheduler) Start(_ context.Context) { s.log.add("sweeper started") }
func (s *fakeScheduler) Stop()                   { s.log.add("sweeper stopped") }

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "clean shutdown"},
		{name: "server failure is returned", err: errors.New("address already in use"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recorder{}
			application := app.New(&fakeServer{log: log, err: tt.err}, &fakeScheduler{log: log}, otelMocks.NewOtel())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := application.Run(ctx)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, []string{"sweeper started", "serve", "drained", "sweeper stopped"}, log.steps)
		})
	}
}
