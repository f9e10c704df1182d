// Package mocks provides an Otel that creates no spans, for tests.
package mocks

import (
	"context"
	"frontdesk/infras/otel"
)

type otelImpl struct{}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

type scopeImpl struct{}

func (s *scopeImpl) End()                         {}
func (s *scopeImpl) SetAttribute(string, any)     {}
func (s *scopeImpl) SetAttributes(map[string]any) {}
func (s *scopeImpl) TraceError(error)             {}
func (s *scopeImpl) TraceIfError(error)           {}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
