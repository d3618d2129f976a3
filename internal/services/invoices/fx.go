package invoices

import "go.uber.org/fx"

var Module = fx.Module("invoices.service",
	fx.Provide(New),
)
