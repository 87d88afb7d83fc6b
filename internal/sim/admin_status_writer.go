package sim

// AdminStatusWriter is implemented by writers that show whether the admin
// HTTP UI is accepting requests.
type AdminStatusWriter interface {
	SetAdminStatus(listening bool)
}
