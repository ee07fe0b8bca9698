package dto

// UsuarioRequest cuerpo de PUT /usuarios/{id}. El password nunca viaja en este cuerpo.
type UsuarioRequest struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre" validate:"required,max=100"`
	Apellido    string `json:"apellido" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Bio         string `json:"bio" validate:"max=500"`
	Descripcion string `json:"descripcion" validate:"max=2000"`
	Img         string `json:"img"`
	FotoPortada string `json:"fotoPortada"`
}

// PasswordRequest nuevo password en texto plano; se hashea en el caso de uso.
type PasswordRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Descripcion string `json:"descripcion"`
	Img         string `json:"img"`
	FotoPortada string `json:"fotoPortada"`
	Rol         string `json:"rol"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
