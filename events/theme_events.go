package events

import "github.com/go-monolith/mono/pkg/helper"

// AppearanceChangedEvent carries the operating system's light/dark signal.
type AppearanceChangedEvent struct {
	Appearance string `json:"appearance"`
}

// AppearanceChangedV1 is the typed event definition for OS appearance changes.
// Subject: events.theme.v1.appearance-changed
var AppearanceChangedV1 = helper.EventDefinition[AppearanceChangedEvent](
	"theme", "AppearanceChanged", "v1",
)
