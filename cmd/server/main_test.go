package main

import (
	"testing"

	"go.uber.org/fx"
)

func TestDependencyGraph(t *testing.T) {
	if err := fx.ValidateApp(modules()); err != nil {
		t.Fatalf("fx.ValidateApp() = %v", err)
	}
}
