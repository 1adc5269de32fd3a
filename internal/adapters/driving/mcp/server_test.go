package mcp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil mapping service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingMappingService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Mapping: &mockMappingService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil mapping service returns error", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingMappingService)
	})

	t.Run("mapping only is valid", func(t *testing.T) {
		assert.NoError(t, (&Ports{Mapping: &mockMappingService{}}).Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Mapping:  &mockMappingService{},
			Match:    &mockMatchService{},
			Merge:    &mockMergeService{},
			Settings: &mockSettingsService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Mapping: &mockMappingService{}})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, addr) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}

func TestServer_RunHTTP_ListenError(t *testing.T) {
	server, err := NewServer(&Ports{Mapping: &mockMappingService{}})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = server.RunHTTP(context.Background(), ln.Addr().String())
	assert.Error(t, err)
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{Mapping: &mockMappingService{}})
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())
}
