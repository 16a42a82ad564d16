package command

import (
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// compileSet handles the browser settings sub-grammar. Required
// numeric arguments (viewport, geo) fail the whole command when they
// do not parse; the offline toggle treats anything except the literal
// tokens "off" and "false" as on.
func compileSet(rest []string, id string) *protocol.Command {
	switch argOr(rest, 0, "") {
	case "viewport":
		w, ok := intAt(rest, 1)
		h, ok2 := intAt(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionViewport, Width: &w, Height: &h}
	case "device":
		name, ok := arg(rest, 1)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionDevice, Device: &name}
	case "geo", "geolocation":
		lat, ok := floatAt(rest, 1)
		lng, ok2 := floatAt(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionGeolocation, Latitude: &lat, Longitude: &lng}
	case "offline":
		off := true
		if v, ok := arg(rest, 1); ok {
			off = v != "off" && v != "false"
		}
		return &protocol.Command{ID: id, Action: protocol.ActionOffline, Offline: &off}
	case "headers":
		// The JSON blob is passed through opaquely; the daemon parses
		// and validates it.
		blob, ok := arg(rest, 1)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionHeaders, Headers: &blob}
	case "credentials", "auth":
		user, ok := arg(rest, 1)
		pass, ok2 := arg(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionCredentials, Username: &user, Password: &pass}
	case "media":
		color := "no-preference"
		if hasToken(rest, "dark") {
			color = "dark"
		} else if hasToken(rest, "light") {
			color = "light"
		}
		reduced := hasToken(rest, "reduced-motion")
		return &protocol.Command{ID: id, Action: protocol.ActionMedia, ColorScheme: &color, ReducedMotion: &reduced}
	}
	return nil
}
