package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/pkg/config"
	"github.com/eva-blog/blog-api/pkg/logger"
)

var _ ports.PhotoStore = (*S3Store)(nil)

// S3Client cliente S3 compartido por los stores de un mismo bucket.
type S3Client struct {
	api      *s3.Client
	uploader *manager.Uploader
	bucket   string
	endpoint string
}

// NewS3Client conecta con el bucket (MinIO o AWS) y lo crea si no existe.
func NewS3Client(ctx context.Context, cfg config.S3Config, log *logger.Logger) (*S3Client, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY_ID y S3_SECRET_ACCESS_KEY son obligatorios con STORAGE_DRIVER=s3")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}

	endpoint := ""
	if cfg.Endpoint != "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		endpoint = scheme + "://" + cfg.Endpoint
	}
	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	c := &S3Client{api: api, uploader: manager.NewUploader(api), bucket: cfg.Bucket, endpoint: endpoint}
	if err := c.ensureBucket(ctx, cfg.Region, log); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *S3Client) ensureBucket(ctx context.Context, region string, log *logger.Logger) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := c.api.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err == nil {
		return nil
	}

	log.Info().Str("bucket", c.bucket).Msg("bucket inexistente, creando")
	in := &s3.CreateBucketInput{Bucket: aws.String(c.bucket)}
	if region != "" && region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := c.api.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("crear bucket %s: %w", c.bucket, err)
	}
	waiter := s3.NewBucketExistsWaiter(c.api)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("esperando bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Store devuelve un PhotoStore que usa prefix (el nombre del directorio) como prefijo de clave.
func (c *S3Client) Store(prefix string) *S3Store {
	return &S3Store{client: c, prefix: path.Clean(prefix)}
}

// S3Store guarda imágenes como objetos <prefix>/<name>.
type S3Store struct {
	client *S3Client
	prefix string
}

// Save sube content con el uploader multiparte.
func (s *S3Store) Save(ctx context.Context, name string, content io.Reader) error {
	_, err := s.client.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.client.bucket),
		Key:    aws.String(s.key(name)),
		Body:   content,
	})
	if err != nil {
		return fmt.Errorf("subir %s al bucket %s: %w", s.key(name), s.client.bucket, err)
	}
	return nil
}

// Open descarga el objeto como stream.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	out, err := s.client.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.client.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("leer %s del bucket %s: %w", s.key(name), s.client.bucket, err)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

// Exists consulta la cabecera del objeto.
func (s *S3Store) Exists(ctx context.Context, name string) bool {
	_, err := s.client.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.client.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err == nil
}

// Delete borra el objeto.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.client.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("borrar %s del bucket %s: %w", s.key(name), s.client.bucket, err)
	}
	return nil
}

// Location devuelve la URL del objeto (o s3://bucket/key sin endpoint propio).
func (s *S3Store) Location(name string) string {
	if s.client.endpoint == "" {
		return "s3://" + s.client.bucket + "/" + s.key(name)
	}
	return s.client.endpoint + "/" + s.client.bucket + "/" + s.key(name)
}

func (s *S3Store) key(name string) string {
	return s.prefix + "/" + path.Base(name)
}
