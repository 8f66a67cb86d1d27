package profile

// ProfileRecord is the fully-resolved, render-ready account view. Every
// field always carries some value after loading: cached edit first, then the
// session identity's known value, then the role default.
type ProfileRecord struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StudentID string `json:"studentId,omitempty"`

	// admin-only fields
	Department     string `json:"department,omitempty"`
	Title          string `json:"title,omitempty"`
	EmployeeID     string `json:"employeeId,omitempty"`
	OfficeLocation string `json:"officeLocation,omitempty"`
	Supervisor     string `json:"supervisor,omitempty"`

	Address string `json:"address"`
	Bio     string `json:"bio"`
}

// ProfilePatch carries only the fields the client actually edited. Nil
// means "leave as is".
type ProfilePatch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	StudentID *string `json:"studentId"`

	Department     *string `json:"department"`
	Title          *string `json:"title"`
	EmployeeID     *string `json:"employeeId"`
	OfficeLocation *string `json:"officeLocation"`
	Supervisor     *string `json:"supervisor"`

	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

// SettingsRecord holds the boolean feature toggles.
type SettingsRecord map[string]bool

// UIState is the persisted dashboard chrome: which tab is open and whether
// the sidebar is expanded.
type UIState struct {
	ActiveTab   string `json:"activeTab"`
	SidebarOpen bool   `json:"sidebarOpen"`
}
