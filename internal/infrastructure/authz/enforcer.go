// Package authz decide qué rol puede llamar a cada ruta protegida usando Casbin.
// La tabla de permisos es estática; las rutas que no aparecen en ella son públicas.
package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"

	"github.com/eva-blog/blog-api/internal/domain/entity"
)

const modelConf = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && r.act == p.act
`

// Permission una fila de la tabla: Role puede llamar Method sobre Path (patrón :param).
type Permission struct {
	Method string
	Path   string
	Role   string
}

// Permissions rutas de administración. Path incluye el prefijo /api.
var Permissions = []Permission{
	{"GET", "/api/comercios/page/:page", entity.RolAdmin},
	{"POST", "/api/comercios/crear", entity.RolAdmin},
	{"PUT", "/api/comercios/:id", entity.RolAdmin},
	{"POST", "/api/comercios/upload", entity.RolAdmin},
	{"POST", "/api/comercios/uploadOneFoto/:imgUpdated", entity.RolAdmin},
	{"DELETE", "/api/comercio/:id", entity.RolAdmin},
	{"POST", "/api/usuarios/foto", entity.RolAdmin},
	{"POST", "/api/usuarios/editarfotoPortada", entity.RolAdmin},
}

// Enforcer envuelve el enforcer de Casbin con la tabla de permisos cargada.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	table    []Permission
}

// NewEnforcer carga el modelo y la tabla. Con table nil usa Permissions.
func NewEnforcer(table []Permission) (*Enforcer, error) {
	if table == nil {
		table = Permissions
	}
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("cargar modelo casbin: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("crear enforcer casbin: %w", err)
	}
	rules := make([][]string, 0, len(table))
	for _, p := range table {
		rules = append(rules, []string{p.Role, NormalizePath(p.Path), p.Method})
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("cargar permisos: %w", err)
	}
	return &Enforcer{enforcer: e, table: table}, nil
}

// NormalizePath lleva path a la forma con que se compara contra la tabla: minúsculas y
// sin barra final. Fiber enruta sin distinguir mayúsculas ni barra final por defecto.
func NormalizePath(path string) string {
	path = strings.ToLower(path)
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Protected indica si method+path aparece en la tabla (requiere token).
func (e *Enforcer) Protected(method, path string) bool {
	path = NormalizePath(path)
	for _, p := range e.table {
		if strings.EqualFold(p.Method, method) && util.KeyMatch2(path, NormalizePath(p.Path)) {
			return true
		}
	}
	return false
}

// Allowed indica si role puede llamar method sobre path.
func (e *Enforcer) Allowed(role, method, path string) (bool, error) {
	ok, err := e.enforcer.Enforce(role, NormalizePath(path), strings.ToUpper(method))
	if err != nil {
		return false, fmt.Errorf("evaluar permiso: %w", err)
	}
	return ok, nil
}
