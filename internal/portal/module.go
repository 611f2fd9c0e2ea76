package portal

import (
	"github.com/afianhyira/Campus-Event-Frontend/internal/template"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		New,
		template.New,
	),
)
