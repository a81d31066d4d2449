package rolegate

import "github.com/Rahul675/indyanet-crm/pkg/sdk"

// Gated actions offered by the console and CLI.
const (
	ActionDeleteAll       = "delete-all"
	ActionManageOperators = "manage-operators"
	ActionClearAudit      = "clear-audit"
	ActionRegisterUser    = "register-user"
	ActionImportRecords   = "import-records"
	ActionDeleteRecord    = "delete-record"
	ActionExportRecords   = "export-records"
)

// actionPolicy maps each action to the lowest role allowed to perform it.
// Admin inherits every operator action.
var actionPolicy = map[string]string{
	ActionDeleteAll:       sdk.RoleAdmin,
	ActionManageOperators: sdk.RoleAdmin,
	ActionClearAudit:      sdk.RoleAdmin,
	ActionRegisterUser:    sdk.RoleAdmin,
	ActionImportRecords:   sdk.RoleAdmin,
	ActionDeleteRecord:    sdk.RoleOperator,
	ActionExportRecords:   sdk.RoleOperator,
}

// KnownActions lists every gated action.
func KnownActions() []string {
	return []string{
		ActionDeleteAll,
		ActionManageOperators,
		ActionClearAudit,
		ActionRegisterUser,
		ActionImportRecords,
		ActionDeleteRecord,
		ActionExportRecords,
	}
}
