package domain

// Resource identifies a mutable record family for authorization checks.
type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceConfig     Resource = "config"
	ResourceOperations Resource = "operations"
	ResourceCampaigns  Resource = "campaigns"
	ResourceTaskClose  Resource = "task-close"
	ResourceTasks      Resource = "tasks"
	ResourceCalls      Resource = "calls"
)

// MenuItem is a single navigable view in the back office.
type MenuItem struct {
	ViewID string `json:"view_id"`
	Label  string `json:"label"`
}

// MenuSection groups menu items under a named heading. Section and item
// order is fixed and significant.
type MenuSection struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

var adminItems = []MenuItem{
	{ViewID: "users", Label: "Usuarios"},
	{ViewID: "config", Label: "Configuraciones"},
}

var transactionalItems = []MenuItem{
	{ViewID: "campaigns", Label: "Campañas"},
	{ViewID: "data-update", Label: "Actualización de Datos"},
	{ViewID: "call-management", Label: "Gestión de Llamadas"},
	{ViewID: "tasks", Label: "Tareas"},
}

var reportItems = []MenuItem{
	{ViewID: "no-answer-report", Label: "Números que no contestan"},
	{ViewID: "interests-report", Label: "Detalle de intereses"},
}

// agentItems is the reduced transactional subset: agents never see campaign
// management.
var agentItems = []MenuItem{
	{ViewID: "data-update", Label: "Actualización de Datos"},
	{ViewID: "call-management", Label: "Gestión de Llamadas"},
	{ViewID: "tasks", Label: "Tareas"},
}

// MenuFor returns the ordered menu sections visible to a role. It is a pure
// function; an unknown role receives the agent menu (least privilege).
func MenuFor(role Role) []MenuSection {
	switch role {
	case RoleAdmin:
		return []MenuSection{
			{Name: "admin", Items: adminItems},
			{Name: "transaccional", Items: transactionalItems},
			{Name: "reportes", Items: reportItems},
		}
	case RoleManager:
		return []MenuSection{
			{Name: "transaccional", Items: transactionalItems},
			{Name: "reportes", Items: reportItems},
		}
	default:
		return []MenuSection{
			{Name: "transaccional", Items: agentItems},
		}
	}
}

// CanMutate reports whether a role may mutate the given resource family.
// Agents work operations, campaigns and task closing read-only; any
// unrecognised role is treated as an agent.
func CanMutate(role Role, res Resource) bool {
	switch role {
	case RoleAdmin, RoleManager:
		return true
	}
	switch res {
	case ResourceOperations, ResourceCampaigns, ResourceTaskClose:
		return false
	}
	return true
}
