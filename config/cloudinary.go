package config

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

var CloudinaryClient *cloudinary.Cloudinary

// InitCloudinary initializes the Cloudinary client from CLOUDINARY_URL.
// When unset, uploads fall back to local disk storage.
func InitCloudinary() *cloudinary.Cloudinary {
	url := os.Getenv("CLOUDINARY_URL")
	if url == "" {
		log.Println("Warning: CLOUDINARY_URL not set, uploads will be stored locally")
		return nil
	}

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		return nil
	}

	log.Println("Cloudinary client initialized")
	CloudinaryClient = cld
	return cld
}
