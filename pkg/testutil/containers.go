//go:build integration

// Package testutil starts throwaway backing services for integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"activity-booking/pkg/utils"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	testDatabase = "activity_booking"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start %s", req.Image)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Terminate(ctx); err != nil {
			t.Logf("terminate %s: %v", req.Image, err)
		}
	})
	return c
}

func hostPort(t *testing.T, c testcontainers.Container, port nat.Port) (string, string) {
	t.Helper()

	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)
	host, err := c.Host(ctx)
	require.NoError(t, err)
	return host, mapped.Port()
}

// Postgres starts PostgreSQL and returns a config pointing at it.
func Postgres(t *testing.T) utils.DatabaseConfig {
	t.Helper()

	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDatabase,
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
		Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
				testUser, testPassword, host, port.Port(), testDatabase)
		}).WithStartupTimeout(60 * time.Second),
	})

	host, port := hostPort(t, c, "5432/tcp")
	return utils.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     testDatabase,
		User:     testUser,
		Password: testPassword,
		MaxConns: 4,
	}
}

// Mongo starts MongoDB and returns a config pointing at it.
func Mongo(t *testing.T) utils.MongoConfig {
	t.Helper()

	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	})

	host, port := hostPort(t, c, "27017/tcp")
	return utils.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port),
		Database: testDatabase,
	}
}

// Redis starts Redis and returns a config pointing at it.
func Redis(t *testing.T) utils.RedisConfig {
	t.Helper()

	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	})

	host, port := hostPort(t, c, "6379/tcp")
	return utils.RedisConfig{
		Addr:     host + ":" + port,
		LockTTL:  5 * time.Second,
		LockWait: time.Second,
	}
}

// RabbitMQ starts a broker and returns its AMQP URL.
func RabbitMQ(t *testing.T) string {
	t.Helper()

	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
	})

	host, port := hostPort(t, c, "5672/tcp")
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port)
}
