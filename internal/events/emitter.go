package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"glossa/internal/models"
)

var Emit = func(ctx context.Context, name string, evt SettingsEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt SettingsEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt SettingsEvent)) {
	if f == nil {
		Emit = func(context.Context, string, SettingsEvent) {}
		return
	}
	Emit = f
}

// FontChangeForwarder returns a listener that emits SettingsFontChanged on ctx.
// The Emit hook is resolved per call so the emitter can be swapped after registration.
func FontChangeForwarder(ctx context.Context) func(models.TranslationSettings) {
	return func(settings models.TranslationSettings) {
		Emit(ctx, SettingsFontChanged, NewFontChanged(settings))
	}
}
