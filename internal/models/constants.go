package models

// File permissions for everything the application writes.
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionExportFile = 0644
)
