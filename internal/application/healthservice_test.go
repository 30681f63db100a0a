package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthService_Check(t *testing.T) {
	svc := NewHealthService(fakePinger{})

	status := svc.Check(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Database)
}

func TestHealthService_CheckDatabaseDown(t *testing.T) {
	svc := NewHealthService(fakePinger{err: errors.New("connection lost")})

	status := svc.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "error", status.Database)
}
