package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
)

// Limites de carga de imagenes
const maxFileSize = 5 * 1024 * 1024       // 5MB
const compressThreshold = 1 * 1024 * 1024 // 1MB

var s3Client *minio.Client

func init() {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: true,
	})
	if err != nil {
		log.Printf("S3 deshabilitado: %v", err)
		return
	}
	s3Client = client
}

// savePhoto guarda la imagen en dir, comprimiendola si pasa de 1MB.
// Devuelve solo el nombre del archivo.
func savePhoto(c *gin.Context, file *multipart.FileHeader, dir, prefix string) (string, error) {
	if file.Size > maxFileSize {
		return "", fmt.Errorf("el archivo supera el límite de 5MB")
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("no se pudo crear el directorio: %v", err)
		}
	}

	filename := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), fileExt)
	fullPath := filepath.Join(dir, filename)

	srcFile, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("no se pudo abrir el archivo subido: %v", err)
	}
	defer srcFile.Close()

	if file.Size > compressThreshold {
		var img image.Image
		if fileExt == ".png" {
			img, err = png.Decode(srcFile)
		} else {
			img, err = jpeg.Decode(srcFile)
		}
		if err != nil {
			return "", fmt.Errorf("no se pudo decodificar la imagen: %v", err)
		}

		compressedImg := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			return "", fmt.Errorf("no se pudo crear el archivo: %v", err)
		}
		defer outFile.Close()

		err = jpeg.Encode(outFile, compressedImg, &jpeg.Options{Quality: 80})
		if err != nil {
			return "", fmt.Errorf("no se pudo guardar la imagen comprimida: %v", err)
		}
	} else {
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			return "", fmt.Errorf("no se pudo guardar la imagen: %v", err)
		}
	}

	// Copia opcional a S3 cuando hay credenciales configuradas
	if s3Client != nil {
		if err := uploadToS3(fullPath, filename); err != nil {
			log.Printf("no se pudo subir %s a S3: %v", filename, err)
		}
	}

	return filename, nil
}

func uploadToS3(fullPath, objectName string) error {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return fmt.Errorf("S3_BUCKET no configurado")
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = s3Client.PutObject(ctx, bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	return err
}

// SaveProductPhoto guarda la foto de un producto del catalogo.
func SaveProductPhoto(c *gin.Context, file *multipart.FileHeader, productID string) (string, error) {
	return savePhoto(c, file, "./uploads/products", productID)
}

// SaveReceiptPhoto guarda el comprobante de pago de una venta.
func SaveReceiptPhoto(c *gin.Context, file *multipart.FileHeader) (string, error) {
	return savePhoto(c, file, "./uploads/receipts", "receipt")
}

// SaveCategoryPhoto guarda la imagen de una categoria o marca.
func SaveCategoryPhoto(c *gin.Context, file *multipart.FileHeader, categoryID string) (string, error) {
	return savePhoto(c, file, "./uploads/categories", categoryID)
}
