package entity

// Roles válidos para Usuario.
const (
	RolAdmin   = "admin"
	RolUsuario = "usuario"
)

// Usuario representa un administrador del blog y su perfil público.
type Usuario struct {
	ID          int64
	Nombre      string
	Apellido    string
	Email       string
	Bio         string
	Descripcion string
	Password    string // hash bcrypt; vacío al guardar conserva el hash almacenado
	Img         string // foto de perfil
	FotoPortada string
	Rol         string
}

// MergeUsuario copia sobre actual los campos de perfil: bio, descripcion, apellido,
// nombre y email. Devuelve actual.
func MergeUsuario(actual, entrante *Usuario) *Usuario {
	actual.Bio = entrante.Bio
	actual.Descripcion = entrante.Descripcion
	actual.Apellido = entrante.Apellido
	actual.Nombre = entrante.Nombre
	actual.Email = entrante.Email
	return actual
}
