package tray

import "encoding/base64"

// iconData is a placeholder tray icon; installers ship the branded icon
// alongside the binary and packaging replaces this asset.
var iconData, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")
