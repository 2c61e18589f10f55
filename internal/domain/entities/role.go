package entities

// Role representa a função que um membro ocupa em um time (perfil ou vaga de um post)
type Role string

const (
	RoleBackend    Role = "BACKEND"
	RoleFrontend   Role = "FRONTEND"
	RoleAndroid    Role = "ANDROID"
	RoleIOS        Role = "IOS"
	RoleDesigner   Role = "DESIGNER"
	RolePlanner    Role = "PLANNER"
	RoleAIEngineer Role = "AI_ENGINEER"
	RoleDevOps     Role = "DEVOPS"
)

type roleInfo struct {
	code        string
	displayName string
}

// roleCatalog mapeia cada role para seu código curto e nome de exibição
var roleCatalog = map[Role]roleInfo{
	RoleBackend:    {code: "BE", displayName: "Backend Developer"},
	RoleFrontend:   {code: "FE", displayName: "Frontend Developer"},
	RoleAndroid:    {code: "AOS", displayName: "Android Developer"},
	RoleIOS:        {code: "IOS", displayName: "iOS Developer"},
	RoleDesigner:   {code: "DES", displayName: "Designer"},
	RolePlanner:    {code: "PM", displayName: "Product Planner"},
	RoleAIEngineer: {code: "AI", displayName: "AI Engineer"},
	RoleDevOps:     {code: "OPS", displayName: "DevOps Engineer"},
}

// AllRoles retorna as roles na ordem de exibição
func AllRoles() []Role {
	return []Role{
		RoleBackend, RoleFrontend, RoleAndroid, RoleIOS,
		RoleDesigner, RolePlanner, RoleAIEngineer, RoleDevOps,
	}
}

// Valid verifica se a role pertence ao vocabulário
func (r Role) Valid() bool {
	_, ok := roleCatalog[r]
	return ok
}

// Code retorna o código curto da role
func (r Role) Code() string {
	return roleCatalog[r].code
}

// DisplayName retorna o nome de exibição da role
func (r Role) DisplayName() string {
	return roleCatalog[r].displayName
}

// ParseRole aceita tanto o nome ("BACKEND") quanto o código curto ("BE")
func ParseRole(value string) (Role, bool) {
	if r := Role(value); r.Valid() {
		return r, true
	}
	for r, info := range roleCatalog {
		if info.code == value {
			return r, true
		}
	}
	return "", false
}
