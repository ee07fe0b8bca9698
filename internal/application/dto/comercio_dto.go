package dto

// Formato de fecha usado en JSON para Comercio y Comentario.
const DateLayout = "2006-01-02"

// ComercioRequest cuerpo de POST /comercios/crear y PUT /comercios/{id}.
// Las imágenes no se aceptan aquí: solo cambian vía los endpoints de subida.
type ComercioRequest struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre" validate:"required,max=150"`
	Likes     int64  `json:"likes" validate:"gte=0"`
	Visitas   int64  `json:"visitas" validate:"gte=0"`
	Fecha     string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Mes       int    `json:"mes" validate:"gte=0,lte=12"`
	Actividad string `json:"actividad" validate:"required,max=100"`
}

// ComentarioResponse comentario asociado a un comercio.
type ComentarioResponse struct {
	ID    int64  `json:"id"`
	Autor string `json:"autor"`
	Texto string `json:"texto"`
	Fecha string `json:"fecha"`
}

// ComercioResponse salida de un comercio. Comentarios es null cuando no se cargaron.
type ComercioResponse struct {
	ID          int64                `json:"id"`
	Nombre      string               `json:"nombre"`
	Likes       int64                `json:"likes"`
	Visitas     int64                `json:"visitas"`
	Fecha       string               `json:"fecha"`
	Mes         int                  `json:"mes"`
	Actividad   string               `json:"actividad"`
	Img         string               `json:"img"`
	Img1        string               `json:"img1"`
	Img2        string               `json:"img2"`
	Comentarios []ComentarioResponse `json:"comentarios"`
}

// ComercioPage página de comercios con los metadatos que espera el panel de administración.
type ComercioPage struct {
	Content          []ComercioResponse `json:"content"`
	TotalElements    int64              `json:"totalElements"`
	TotalPages       int                `json:"totalPages"`
	Number           int                `json:"number"`
	Size             int                `json:"size"`
	NumberOfElements int                `json:"numberOfElements"`
	First            bool               `json:"first"`
	Last             bool               `json:"last"`
	Empty            bool               `json:"empty"`
}
