package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetPrincipal(ctx))
	assert.Equal(t, "", GetSubject(ctx))

	p := &Principal{Subject: "alice", ClientID: "spa", Scopes: []string{"catalog.bff"}}
	ctx = WithPrincipal(ctx, p)

	assert.Same(t, p, GetPrincipal(ctx))
	assert.Equal(t, "alice", GetSubject(ctx))
	assert.True(t, p.HasScope("catalog.bff"))
	assert.False(t, p.HasScope("catalog"))
}

func TestTraceContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetRequestID(ctx))

	trace := NewTraceContext()
	ctx = WithTrace(ctx, trace)

	assert.Equal(t, trace.RequestID, GetRequestID(ctx))
	assert.Equal(t, trace.TraceID, GetTraceID(ctx))
}
