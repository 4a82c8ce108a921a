// Package branding holds the product names shown to users and telemetry.
package branding

// AppName is the user-facing product name.
const AppName = "Sheetkeeper"

// Namespace prefixes metric names and groups telemetry resources.
const Namespace = "sheetkeeper"
