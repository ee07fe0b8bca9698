package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3Store_ClaveConPrefijo(t *testing.T) {
	c := &S3Client{bucket: "blog", endpoint: "http://minio:9000"}
	s := c.Store("descargasAdmin/")

	assert.Equal(t, "descargasAdmin/foto.jpg", s.key("foto.jpg"))
	assert.Equal(t, "descargasAdmin/foto.jpg", s.key("../otro/foto.jpg"))
	assert.Equal(t, "http://minio:9000/blog/descargasAdmin/foto.jpg", s.Location("foto.jpg"))
}

func TestS3Store_LocationSinEndpoint(t *testing.T) {
	s := (&S3Client{bucket: "blog"}).Store("descargas")
	assert.Equal(t, "s3://blog/descargas/f.png", s.Location("f.png"))
}
