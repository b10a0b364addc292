package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/tu-usuario/agroportal-api/pkg/config"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// Store almacena imágenes en un bucket S3 (AWS o compatible, p. ej. MinIO).
// Bucket único; las claves de objeto se generan aquí y la URL pública se
// construye con PublicBaseURL + "/" + bucket + "/" + clave.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	log           *logger.Logger
}

// New construye el almacén desde la configuración de la app.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: cargar configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(cfg.Endpoint, "/")
	}
	return &Store{client: client, bucket: cfg.Bucket, publicBaseURL: base, log: log}, nil
}

// Upload sube el archivo y devuelve su URL pública. La clave de objeto es
// aleatoria (uuid + epoch ms) conservando la extensión original: los nombres
// de archivo del cliente nunca llegan al bucket.
func (s *Store) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := objectKey(filename)

	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: r}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		input.ContentType = &ct
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: subir objeto %s: %w", key, err)
	}

	url := s.PublicURL(key)
	s.log.Debug().Str("key", key).Str("url", url).Msg("Imagen subida al bucket")
	return url, nil
}

// Remove elimina los objetos detrás de las URLs dadas. Las URLs que no
// pertenecen al bucket se ignoran; un fallo individual se registra y no
// interrumpe el resto (la limpieza de huérfanos es best-effort).
func (s *Store) Remove(ctx context.Context, urls []string) {
	for _, u := range urls {
		key, ok := s.keyFromURL(u)
		if !ok {
			continue
		}
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("No se pudo eliminar la imagen del bucket")
		}
	}
}

// PublicURL construye la URL pública de una clave de objeto.
func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + key
}

// keyFromURL recupera la clave de objeto desde una URL pública del bucket.
func (s *Store) keyFromURL(u string) (string, bool) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(u, marker)
	if idx < 0 {
		return "", false
	}
	key := u[idx+len(marker):]
	if key == "" {
		return "", false
	}
	return key, true
}

func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().UnixMilli(), ext)
}
